// Package businessflow contains the core business logic and use cases for cargo tracking workflows
package businessflow

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/app/services"
	"github.com/edzeame-del/ghana-cargo-logistics/config"
	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/edzeame-del/ghana-cargo-logistics/repository"
	"github.com/edzeame-del/ghana-cargo-logistics/sheet"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
)

// TrackingSyncFlow orchestrates the full-replace spreadsheet sync
type TrackingSyncFlow interface {
	SyncNow(ctx context.Context) (*dto.SyncResponse, error)
	Status(ctx context.Context) (*dto.SyncStatusResponse, error)
}

// TrackingSyncFlowImpl implements the sheet sync business flow
type TrackingSyncFlowImpl struct {
	trackingRepo repository.TrackingRecordRepository
	sheetsAPI    services.SheetsAPI
	cfg          config.SheetsConfig
	normalizer   *sheet.Normalizer
	now          func() time.Time

	mu            sync.Mutex
	running       bool
	lastRunAt     time.Time
	lastSuccessAt time.Time
	lastError     string
	lastCount     int
}

// NewTrackingSyncFlow creates a new sync flow instance
func NewTrackingSyncFlow(
	trackingRepo repository.TrackingRecordRepository,
	sheetsAPI services.SheetsAPI,
	cfg config.SheetsConfig,
	now func() time.Time,
) TrackingSyncFlow {
	if now == nil {
		now = utils.UTCNow
	}
	return &TrackingSyncFlowImpl{
		trackingRepo: trackingRepo,
		sheetsAPI:    sheetsAPI,
		cfg:          cfg,
		normalizer:   sheet.NewNormalizer(now),
		now:          now,
	}
}

// SyncNow fetches every configured source, normalizes the rows, and replaces
// the dataset in one transaction. The replace only happens once a non-empty
// normalized batch is in hand, so a broken or empty fetch can never wipe the
// database. Only one sync runs at a time.
func (f *TrackingSyncFlowImpl) SyncNow(ctx context.Context) (*dto.SyncResponse, error) {
	if !f.cfg.SyncConfigured() {
		return nil, NewBusinessError("SYNC_NOT_CONFIGURED", "Sheet sync is not configured", ErrSyncNotConfigured)
	}

	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return nil, NewBusinessError("SYNC_ALREADY_RUNNING", "A sync is already in progress", ErrSyncAlreadyRunning)
	}
	f.running = true
	f.lastRunAt = f.now()
	f.mu.Unlock()

	count, err := f.runSync(ctx)

	f.mu.Lock()
	f.running = false
	if err != nil {
		f.lastError = err.Error()
	} else {
		f.lastError = ""
		f.lastSuccessAt = f.now()
		f.lastCount = count
	}
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}

	return &dto.SyncResponse{
		RecordsSynced: count,
		Message:       fmt.Sprintf("Synced %d record(s)", count),
	}, nil
}

func (f *TrackingSyncFlowImpl) runSync(ctx context.Context) (int, error) {
	records, err := f.fetchPrimary(ctx)
	if err != nil {
		return 0, NewBusinessError("SYNC_FETCH_FAILED", "Failed to fetch primary sheet", err)
	}

	// The secondary pending source is optional and best-effort: its failure
	// must not block the primary dataset from refreshing.
	if f.cfg.PendingSpreadsheetID != "" {
		pending, err := f.fetchPending(ctx)
		if err != nil {
			log.Printf("sheet sync: pending source failed, continuing with primary only: %v", err)
		} else {
			records = append(records, pending...)
		}
	}

	if len(records) == 0 {
		return 0, NewBusinessError("SYNC_SOURCE_EMPTY", "Sync source returned no usable rows", ErrSyncSourceEmpty)
	}

	if err := f.trackingRepo.ReplaceAll(ctx, records, utils.SyncBatchSize); err != nil {
		return 0, NewBusinessError("SYNC_REPLACE_FAILED", "Failed to replace tracking dataset", err)
	}

	return len(records), nil
}

// fetchPrimary pulls the loaded-goods sheet, which uses fixed column
// positions and carries no status column.
func (f *TrackingSyncFlowImpl) fetchPrimary(ctx context.Context) ([]*models.TrackingRecord, error) {
	rows, err := f.sheetsAPI.FetchRange(ctx, f.cfg.SpreadsheetID, f.cfg.SheetRange)
	if err != nil {
		return nil, err
	}

	return f.normalizeRows(rows, sheet.ProductionSheetMapping(), sheet.NormalizeOptions{
		DefaultStatus: utils.StatusLoaded,
	}), nil
}

// fetchPending pulls the arrived-but-not-loaded sheet. Pending goods have no
// load date, so ETA derivation is skipped.
func (f *TrackingSyncFlowImpl) fetchPending(ctx context.Context) ([]*models.TrackingRecord, error) {
	rows, err := f.sheetsAPI.FetchRange(ctx, f.cfg.PendingSpreadsheetID, f.cfg.PendingSheetRange)
	if err != nil {
		return nil, err
	}

	return f.normalizeRows(rows, sheet.PendingSheetMapping(), sheet.NormalizeOptions{
		DefaultStatus:     utils.StatusPendingLoading,
		SkipETADerivation: true,
	}), nil
}

// normalizeRows maps and normalizes data rows, skipping the header row and
// anything without a searchable identifier.
func (f *TrackingSyncFlowImpl) normalizeRows(rows [][]string, mapping sheet.MappingStrategy, opts sheet.NormalizeOptions) []*models.TrackingRecord {
	if len(rows) < 2 {
		return nil
	}

	records := make([]*models.TrackingRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, ok := sheet.NormalizeRow(f.normalizer, mapping.MapRow(row), opts)
		if !ok {
			continue
		}
		records = append(records, recordFromSheet(rec))
	}
	return records
}

// Status reports the most recent sync outcome plus the live record count
func (f *TrackingSyncFlowImpl) Status(ctx context.Context) (*dto.SyncStatusResponse, error) {
	total, err := f.trackingRepo.CountAll(ctx)
	if err != nil {
		return nil, NewBusinessError("SYNC_STATUS_FAILED", "Failed to count tracking records", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	resp := &dto.SyncStatusResponse{
		Configured:   f.cfg.SyncConfigured(),
		Running:      f.running,
		LastError:    f.lastError,
		LastCount:    f.lastCount,
		TotalRecords: total,
	}
	if !f.lastRunAt.IsZero() {
		resp.LastRunAt = f.lastRunAt.Format(time.RFC3339)
	}
	if !f.lastSuccessAt.IsZero() {
		resp.LastSuccessAt = f.lastSuccessAt.Format(time.RFC3339)
	}

	return resp, nil
}
