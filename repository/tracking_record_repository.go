// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"gorm.io/gorm"
)

// TrackingRecordRepositoryImpl implements TrackingRecordRepository interface
type TrackingRecordRepositoryImpl struct {
	*BaseRepository[models.TrackingRecord, models.TrackingRecordFilter]
}

// NewTrackingRecordRepository creates a new tracking record repository
func NewTrackingRecordRepository(db *gorm.DB) TrackingRecordRepository {
	return &TrackingRecordRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TrackingRecord, models.TrackingRecordFilter](db),
	}
}

// SearchByTrackingNumber retrieves records whose tracking number matches the
// term exactly, or by suffix when the term is exactly six characters.
// Matching is case-insensitive.
func (r *TrackingRecordRepositoryImpl) SearchByTrackingNumber(ctx context.Context, term string) ([]*models.TrackingRecord, error) {
	db := r.getDB(ctx)

	term = strings.TrimSpace(term)

	var records []*models.TrackingRecord
	query := db.Where("LOWER(tracking_number) = LOWER(?)", term)
	if len(term) == utils.TrackingNumberMinLen {
		query = db.Where("LOWER(tracking_number) = LOWER(?) OR LOWER(tracking_number) LIKE LOWER(?)", term, "%"+term)
	}

	err := query.Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search by tracking number: %w", err)
	}

	return records, nil
}

// SearchByShippingMark retrieves records matching the term as a
// case-insensitive substring of the shipping mark. Only records received on
// or after visibleSince (canonical YYYY-MM-DD) or still pending loading are
// returned, so a guessed mark cannot expose a customer's full history.
func (r *TrackingRecordRepositoryImpl) SearchByShippingMark(ctx context.Context, term string, visibleSince string) ([]*models.TrackingRecord, error) {
	db := r.getDB(ctx)

	pattern := "%" + strings.TrimSpace(term) + "%"

	var records []*models.TrackingRecord
	err := db.Where("shipping_mark ILIKE ?", pattern).
		Where("(date_received <> '' AND date_received >= ?) OR status ILIKE ?", visibleSince, "%pending%").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search by shipping mark: %w", err)
	}

	return records, nil
}

// SearchAdmin retrieves records matching the term as a substring of either
// identity column, without the public visibility window. Returns the page
// plus the total match count.
func (r *TrackingRecordRepositoryImpl) SearchAdmin(ctx context.Context, term string, limit, offset int) ([]*models.TrackingRecord, int64, error) {
	db := r.getDB(ctx)

	pattern := "%" + strings.TrimSpace(term) + "%"
	base := db.Model(&models.TrackingRecord{}).
		Where("tracking_number ILIKE ? OR shipping_mark ILIKE ?", pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count admin search matches: %w", err)
	}

	var records []*models.TrackingRecord
	err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search tracking records: %w", err)
	}

	return records, total, nil
}

// List retrieves tracking records ordered by newest first with pagination
func (r *TrackingRecordRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*models.TrackingRecord, error) {
	db := r.getDB(ctx)

	var records []*models.TrackingRecord
	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking records: %w", err)
	}

	return records, nil
}

// CountAll returns the total number of tracking records
func (r *TrackingRecordRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.TrackingRecord{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tracking records: %w", err)
	}

	return count, nil
}

// ReplaceAll atomically swaps the full dataset: all existing rows are deleted
// and the new batch inserted within one transaction, so readers never observe
// a partially synced table. Callers must not pass an empty batch.
func (r *TrackingRecordRepositoryImpl) ReplaceAll(ctx context.Context, records []*models.TrackingRecord, batchSize int) error {
	if len(records) == 0 {
		return fmt.Errorf("refusing to replace dataset with empty batch")
	}
	if batchSize <= 0 {
		batchSize = utils.SyncBatchSize
	}

	return WithTransaction(ctx, r.DB, func(txCtx context.Context) error {
		tx := r.getDB(txCtx)

		if err := tx.Where("1 = 1").Delete(&models.TrackingRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear tracking records: %w", err)
		}

		if err := tx.CreateInBatches(records, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert replacement batch: %w", err)
		}

		return nil
	})
}

// DeleteByIDs removes the given records and reports how many rows matched
func (r *TrackingRecordRepositoryImpl) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	db := r.getDB(ctx)

	result := db.Where("id IN ?", ids).Delete(&models.TrackingRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete tracking records: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// DeleteExpired removes records whose ETA is a valid canonical date strictly
// before the cutoff. Rows still pending loading are kept regardless of ETA,
// and rows with blank or malformed ETAs are never touched.
func (r *TrackingRecordRepositoryImpl) DeleteExpired(ctx context.Context, etaCutoff string) (int64, error) {
	db := r.getDB(ctx)

	result := db.
		Where("eta ~ ?", `^\d{4}-\d{2}-\d{2}$`).
		Where("eta < ?", etaCutoff).
		Where("status NOT ILIKE ?", "%pending%").
		Delete(&models.TrackingRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tracking records: %w", result.Error)
	}

	return result.RowsAffected, nil
}
