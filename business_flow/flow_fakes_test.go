package businessflow

import (
	"context"
	"errors"

	"github.com/edzeame-del/ghana-cargo-logistics/models"
)

// fakeTrackingRepo is an in-memory TrackingRecordRepository with per-method
// hooks for error injection.
type fakeTrackingRepo struct {
	records []*models.TrackingRecord

	searchByTrackingFn func(term string) ([]*models.TrackingRecord, error)
	searchByMarkFn     func(term, visibleSince string) ([]*models.TrackingRecord, error)

	replaceAllCalls [][]*models.TrackingRecord
	replaceAllErr   error

	deleteExpiredCutoffs []string
	deleteExpiredCount   int64

	deletedIDs []uint
}

func (f *fakeTrackingRepo) ByID(ctx context.Context, id uint) (*models.TrackingRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeTrackingRepo) Save(ctx context.Context, entity *models.TrackingRecord) error {
	f.records = append(f.records, entity)
	return nil
}

func (f *fakeTrackingRepo) SaveBatch(ctx context.Context, entities []*models.TrackingRecord) error {
	f.records = append(f.records, entities...)
	return nil
}

func (f *fakeTrackingRepo) SearchByTrackingNumber(ctx context.Context, term string) ([]*models.TrackingRecord, error) {
	if f.searchByTrackingFn != nil {
		return f.searchByTrackingFn(term)
	}
	return nil, nil
}

func (f *fakeTrackingRepo) SearchByShippingMark(ctx context.Context, term, visibleSince string) ([]*models.TrackingRecord, error) {
	if f.searchByMarkFn != nil {
		return f.searchByMarkFn(term, visibleSince)
	}
	return nil, nil
}

func (f *fakeTrackingRepo) SearchAdmin(ctx context.Context, term string, limit, offset int) ([]*models.TrackingRecord, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakeTrackingRepo) List(ctx context.Context, limit, offset int) ([]*models.TrackingRecord, error) {
	if offset >= len(f.records) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.records) {
		end = len(f.records)
	}
	return f.records[offset:end], nil
}

func (f *fakeTrackingRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeTrackingRepo) ReplaceAll(ctx context.Context, records []*models.TrackingRecord, batchSize int) error {
	if f.replaceAllErr != nil {
		return f.replaceAllErr
	}
	if len(records) == 0 {
		return errors.New("refusing to replace dataset with empty batch")
	}
	f.replaceAllCalls = append(f.replaceAllCalls, records)
	f.records = records
	return nil
}

func (f *fakeTrackingRepo) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	f.deletedIDs = append(f.deletedIDs, ids...)
	return int64(len(ids)), nil
}

func (f *fakeTrackingRepo) DeleteExpired(ctx context.Context, etaCutoff string) (int64, error) {
	f.deleteExpiredCutoffs = append(f.deleteExpiredCutoffs, etaCutoff)
	return f.deleteExpiredCount, nil
}

// fakeSearchLogRepo collects saved log rows
type fakeSearchLogRepo struct {
	saved   []*models.SearchLog
	saveErr error
}

func (f *fakeSearchLogRepo) ByID(ctx context.Context, id uint) (*models.SearchLog, error) {
	return nil, nil
}

func (f *fakeSearchLogRepo) Save(ctx context.Context, entity *models.SearchLog) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, entity)
	return nil
}

func (f *fakeSearchLogRepo) SaveBatch(ctx context.Context, entities []*models.SearchLog) error {
	f.saved = append(f.saved, entities...)
	return nil
}

func (f *fakeSearchLogRepo) ListByFilter(ctx context.Context, filter models.SearchLogFilter, limit, offset int) ([]*models.SearchLog, error) {
	return f.saved, nil
}

func (f *fakeSearchLogRepo) CountByFilter(ctx context.Context, filter models.SearchLogFilter) (int64, error) {
	return int64(len(f.saved)), nil
}

// fakeStatsRepo collects counter increments keyed by date
type statsIncrement struct {
	date       string
	searchType string
	success    bool
}

type fakeStatsRepo struct {
	increments []statsIncrement
	stats      []*models.DailySearchStats
	summary    *models.SearchStatsSummary
}

func (f *fakeStatsRepo) ByID(ctx context.Context, id uint) (*models.DailySearchStats, error) {
	return nil, nil
}

func (f *fakeStatsRepo) Save(ctx context.Context, entity *models.DailySearchStats) error {
	f.stats = append(f.stats, entity)
	return nil
}

func (f *fakeStatsRepo) SaveBatch(ctx context.Context, entities []*models.DailySearchStats) error {
	f.stats = append(f.stats, entities...)
	return nil
}

func (f *fakeStatsRepo) IncrementForSearch(ctx context.Context, date string, searchType string, success bool) error {
	f.increments = append(f.increments, statsIncrement{date: date, searchType: searchType, success: success})
	return nil
}

func (f *fakeStatsRepo) ListRange(ctx context.Context, from, to string) ([]*models.DailySearchStats, error) {
	var out []*models.DailySearchStats
	for _, s := range f.stats {
		if s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStatsRepo) Summary(ctx context.Context) (*models.SearchStatsSummary, error) {
	if f.summary != nil {
		return f.summary, nil
	}
	return &models.SearchStatsSummary{}, nil
}

// fakeUserRepo holds a single staff account
type fakeUserRepo struct {
	user *models.User
}

func (f *fakeUserRepo) ByID(ctx context.Context, id uint) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, entity *models.User) error {
	f.user = entity
	return nil
}

func (f *fakeUserRepo) SaveBatch(ctx context.Context, entities []*models.User) error {
	if len(entities) > 0 {
		f.user = entities[len(entities)-1]
	}
	return nil
}

func (f *fakeUserRepo) ByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.user != nil && f.user.Username == username {
		return f.user, nil
	}
	return nil, nil
}

// fakeVesselRepo is an in-memory VesselRepository
type fakeVesselRepo struct {
	vessels []*models.Vessel
	nextID  uint
}

func (f *fakeVesselRepo) ByID(ctx context.Context, id uint) (*models.Vessel, error) {
	for _, v := range f.vessels {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeVesselRepo) Save(ctx context.Context, entity *models.Vessel) error {
	f.nextID++
	entity.ID = f.nextID
	f.vessels = append(f.vessels, entity)
	return nil
}

func (f *fakeVesselRepo) SaveBatch(ctx context.Context, entities []*models.Vessel) error {
	for _, v := range entities {
		if err := f.Save(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeVesselRepo) ListAll(ctx context.Context) ([]*models.Vessel, error) {
	return f.vessels, nil
}

func (f *fakeVesselRepo) Update(ctx context.Context, vessel *models.Vessel) error {
	for i, v := range f.vessels {
		if v.ID == vessel.ID {
			f.vessels[i] = vessel
			return nil
		}
	}
	return errors.New("vessel not found")
}

func (f *fakeVesselRepo) Delete(ctx context.Context, id uint) (int64, error) {
	for i, v := range f.vessels {
		if v.ID == id {
			f.vessels = append(f.vessels[:i], f.vessels[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeSheetsAPI serves canned rows per spreadsheet ID
type fakeSheetsAPI struct {
	rows map[string][][]string
	errs map[string]error
}

func (f *fakeSheetsAPI) FetchRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	if err, ok := f.errs[spreadsheetID]; ok {
		return nil, err
	}
	return f.rows[spreadsheetID], nil
}
