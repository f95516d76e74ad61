// Package businessflow contains the core business logic and use cases for cargo tracking workflows
package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/edzeame-del/ghana-cargo-logistics/repository"
	"github.com/edzeame-del/ghana-cargo-logistics/sheet"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"github.com/xuri/excelize/v2"
)

const maxAdminPageSize = 200

// TrackingAdminFlow handles staff-facing tracking data management
type TrackingAdminFlow interface {
	Upload(ctx context.Context, request *dto.UploadTrackingRequest) (*dto.UploadTrackingResponse, error)
	UploadFile(ctx context.Context, fileData []byte) (*dto.UploadTrackingResponse, error)
	Export(ctx context.Context) (string, []byte, error)
	Search(ctx context.Context, term string, page, limit int) (*dto.AdminTrackingSearchResponse, error)
	List(ctx context.Context, page, limit int) (*dto.TrackingListResponse, error)
	BulkDelete(ctx context.Context, request *dto.BulkDeleteRequest) (*dto.BulkDeleteResponse, error)
}

// TrackingAdminFlowImpl implements the tracking administration business flow
type TrackingAdminFlowImpl struct {
	trackingRepo repository.TrackingRecordRepository
	normalizer   *sheet.Normalizer
	now          func() time.Time
}

// NewTrackingAdminFlow creates a new tracking admin flow instance
func NewTrackingAdminFlow(trackingRepo repository.TrackingRecordRepository, now func() time.Time) TrackingAdminFlow {
	if now == nil {
		now = utils.UTCNow
	}
	return &TrackingAdminFlowImpl{
		trackingRepo: trackingRepo,
		normalizer:   sheet.NewNormalizer(now),
		now:          now,
	}
}

// Upload appends a batch of pre-parsed rows to the dataset. Rows without a
// searchable identifier are skipped; duplicates of existing records are
// tolerated because the next full sync replaces everything anyway.
func (f *TrackingAdminFlowImpl) Upload(ctx context.Context, request *dto.UploadTrackingRequest) (*dto.UploadTrackingResponse, error) {
	if len(request.Rows) == 0 {
		return nil, NewBusinessError("UPLOAD_VALIDATION_FAILED", "Upload validation failed", ErrNoTrackingRows)
	}

	records := make([]*models.TrackingRecord, 0, len(request.Rows))
	skipped := 0
	for _, row := range request.Rows {
		rec, ok := sheet.NormalizeRow(f.normalizer, sheet.Record{
			TrackingNumber: row.TrackingNumber,
			ShippingMark:   row.ShippingMark,
			Quantity:       row.Quantity,
			CBM:            row.CBM,
			DateReceived:   row.DateReceived,
			DateLoaded:     row.DateLoaded,
			ETA:            row.ETA,
			Status:         row.Status,
		}, sheet.NormalizeOptions{})
		if !ok {
			skipped++
			continue
		}
		records = append(records, recordFromSheet(rec))
	}

	if len(records) == 0 {
		return nil, NewBusinessError("UPLOAD_EMPTY", "No usable rows in upload", ErrNoTrackingRows)
	}

	if err := f.trackingRepo.SaveBatch(ctx, records); err != nil {
		return nil, NewBusinessError("UPLOAD_SAVE_FAILED", "Failed to save uploaded rows", err)
	}

	return &dto.UploadTrackingResponse{
		Submitted: len(request.Rows),
		Inserted:  len(records),
		Skipped:   skipped,
		Message:   fmt.Sprintf("Inserted %d record(s), skipped %d", len(records), skipped),
	}, nil
}

// UploadFile parses a raw .xlsx workbook and appends its first sheet using
// fuzzy header mapping, so staff can upload spreadsheets exported from
// whatever tool the supplier used.
func (f *TrackingAdminFlowImpl) UploadFile(ctx context.Context, fileData []byte) (*dto.UploadTrackingResponse, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(fileData))
	if err != nil {
		return nil, NewBusinessError("UPLOAD_FILE_UNREADABLE", "Spreadsheet file could not be read", ErrSpreadsheetUnreadable)
	}
	defer func() { _ = xl.Close() }()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewBusinessError("UPLOAD_FILE_EMPTY", "Spreadsheet contains no sheets", ErrSpreadsheetEmpty)
	}

	rows, err := xl.GetRows(sheets[0])
	if err != nil {
		return nil, NewBusinessError("UPLOAD_FILE_UNREADABLE", "Spreadsheet rows could not be read", ErrSpreadsheetUnreadable)
	}
	if len(rows) < 2 {
		return nil, NewBusinessError("UPLOAD_FILE_EMPTY", "Spreadsheet contains no data rows", ErrSpreadsheetEmpty)
	}

	mapping := sheet.NewFuzzyHeaderMapping(rows[0])

	request := &dto.UploadTrackingRequest{Rows: make([]dto.UploadRowDTO, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		rec := mapping.MapRow(row)
		request.Rows = append(request.Rows, dto.UploadRowDTO{
			TrackingNumber: rec.TrackingNumber,
			ShippingMark:   rec.ShippingMark,
			Quantity:       rec.Quantity,
			CBM:            rec.CBM,
			DateReceived:   rec.DateReceived,
			DateLoaded:     rec.DateLoaded,
			ETA:            rec.ETA,
			Status:         rec.Status,
		})
	}

	return f.Upload(ctx, request)
}

// Export writes the full dataset into a single-sheet .xlsx workbook
func (f *TrackingAdminFlowImpl) Export(ctx context.Context) (string, []byte, error) {
	total, err := f.trackingRepo.CountAll(ctx)
	if err != nil {
		return "", nil, NewBusinessError("EXPORT_FAILED", "Failed to count tracking records", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	name := xl.GetSheetName(0)
	header := []string{"shipping_mark", "tracking_number", "quantity", "cbm", "date_received", "date_loaded", "eta", "status"}
	_ = xl.SetSheetRow(name, "A1", &header)

	const pageSize = 1000
	rowIdx := 2
	for offset := 0; offset < int(total); offset += pageSize {
		records, err := f.trackingRepo.List(ctx, pageSize, offset)
		if err != nil {
			return "", nil, NewBusinessError("EXPORT_FAILED", "Failed to page tracking records", err)
		}
		for _, r := range records {
			row := []string{r.ShippingMark, r.TrackingNumber, r.Quantity, r.CBM, r.DateReceived, r.DateLoaded, r.ETA, r.Status}
			cellRef, _ := excelize.CoordinatesToCellName(1, rowIdx)
			_ = xl.SetSheetRow(name, cellRef, &row)
			rowIdx++
		}
		if len(records) < pageSize {
			break
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXPORT_WRITE_FAILED", "Failed to write workbook", err)
	}

	filename := fmt.Sprintf("tracking_records_%s.xlsx", f.now().Format("20060102"))
	return filename, buf.Bytes(), nil
}

// Search runs the unwindowed staff search with pagination
func (f *TrackingAdminFlowImpl) Search(ctx context.Context, term string, page, limit int) (*dto.AdminTrackingSearchResponse, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, NewBusinessError("SEARCH_VALIDATION_FAILED", "Search validation failed", err)
	}
	if term == "" {
		return nil, NewBusinessError("SEARCH_VALIDATION_FAILED", "Search validation failed", ErrSearchTermRequired)
	}

	records, total, err := f.trackingRepo.SearchAdmin(ctx, term, limit, (page-1)*limit)
	if err != nil {
		return nil, NewBusinessError("SEARCH_FAILED", "Failed to search tracking records", err)
	}

	return &dto.AdminTrackingSearchResponse{
		Records:    ToTrackingRecordDTOs(records),
		Pagination: paginationFor(page, limit, total),
	}, nil
}

// List returns one page of the dataset, newest first
func (f *TrackingAdminFlowImpl) List(ctx context.Context, page, limit int) (*dto.TrackingListResponse, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, NewBusinessError("LIST_VALIDATION_FAILED", "List validation failed", err)
	}

	records, err := f.trackingRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, NewBusinessError("LIST_FAILED", "Failed to list tracking records", err)
	}

	total, err := f.trackingRepo.CountAll(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_FAILED", "Failed to count tracking records", err)
	}

	return &dto.TrackingListResponse{
		Records:    ToTrackingRecordDTOs(records),
		Pagination: paginationFor(page, limit, total),
	}, nil
}

// BulkDelete removes the named records
func (f *TrackingAdminFlowImpl) BulkDelete(ctx context.Context, request *dto.BulkDeleteRequest) (*dto.BulkDeleteResponse, error) {
	if len(request.IDs) == 0 {
		return nil, NewBusinessError("BULK_DELETE_VALIDATION_FAILED", "Bulk delete validation failed", ErrNoRecordIDs)
	}

	deleted, err := f.trackingRepo.DeleteByIDs(ctx, request.IDs)
	if err != nil {
		return nil, NewBusinessError("BULK_DELETE_FAILED", "Failed to delete tracking records", err)
	}

	return &dto.BulkDeleteResponse{
		Deleted: deleted,
		Message: fmt.Sprintf("Deleted %d record(s)", deleted),
	}, nil
}

func recordFromSheet(rec sheet.Record) *models.TrackingRecord {
	return &models.TrackingRecord{
		TrackingNumber: rec.TrackingNumber,
		ShippingMark:   rec.ShippingMark,
		Quantity:       rec.Quantity,
		CBM:            rec.CBM,
		DateReceived:   rec.DateReceived,
		DateLoaded:     rec.DateLoaded,
		ETA:            rec.ETA,
		Status:         rec.Status,
	}
}

func normalizePage(page, limit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 20
	}
	if page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if limit < 1 || limit > maxAdminPageSize {
		return 0, 0, ErrInvalidPageSize
	}
	return page, limit, nil
}

func paginationFor(page, limit int, total int64) dto.PaginationDTO {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return dto.PaginationDTO{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
