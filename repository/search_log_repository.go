// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"gorm.io/gorm"
)

// SearchLogRepositoryImpl implements SearchLogRepository interface
type SearchLogRepositoryImpl struct {
	*BaseRepository[models.SearchLog, models.SearchLogFilter]
}

// NewSearchLogRepository creates a new search log repository
func NewSearchLogRepository(db *gorm.DB) SearchLogRepository {
	return &SearchLogRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SearchLog, models.SearchLogFilter](db),
	}
}

func applySearchLogFilter(db *gorm.DB, filter models.SearchLogFilter) *gorm.DB {
	if filter.SearchType != nil {
		db = db.Where("search_type = ?", *filter.SearchType)
	}
	if filter.Success != nil {
		db = db.Where("success = ?", *filter.Success)
	}
	if filter.After != nil {
		db = db.Where("timestamp >= ?", *filter.After)
	}
	if filter.Before != nil {
		db = db.Where("timestamp <= ?", *filter.Before)
	}
	return db
}

// ListByFilter retrieves search logs matching the filter, newest first
func (r *SearchLogRepositoryImpl) ListByFilter(ctx context.Context, filter models.SearchLogFilter, limit, offset int) ([]*models.SearchLog, error) {
	db := applySearchLogFilter(r.getDB(ctx), filter)

	var logs []*models.SearchLog
	err := db.Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list search logs: %w", err)
	}

	return logs, nil
}

// CountByFilter returns the number of search logs matching the filter
func (r *SearchLogRepositoryImpl) CountByFilter(ctx context.Context, filter models.SearchLogFilter) (int64, error) {
	db := applySearchLogFilter(r.getDB(ctx).Model(&models.SearchLog{}), filter)

	var count int64
	err := db.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count search logs: %w", err)
	}

	return count, nil
}
