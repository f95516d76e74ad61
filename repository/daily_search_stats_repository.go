// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailySearchStatsRepositoryImpl implements DailySearchStatsRepository interface
type DailySearchStatsRepositoryImpl struct {
	*BaseRepository[models.DailySearchStats, models.DailySearchStatsFilter]
}

// NewDailySearchStatsRepository creates a new daily search stats repository
func NewDailySearchStatsRepository(db *gorm.DB) DailySearchStatsRepository {
	return &DailySearchStatsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.DailySearchStats, models.DailySearchStatsFilter](db),
	}
}

// IncrementForSearch bumps the counters for one logged search on the given
// date (canonical YYYY-MM-DD). The row is created on first use; concurrent
// searches on the same date contend on a single upsert, never on a
// read-modify-write.
func (r *DailySearchStatsRepositoryImpl) IncrementForSearch(ctx context.Context, date string, searchType string, success bool) error {
	db := r.getDB(ctx)

	successInc := 0
	failedInc := 0
	if success {
		successInc = 1
	} else {
		failedInc = 1
	}

	trackingInc := 0
	markInc := 0
	switch searchType {
	case models.SearchTypeTrackingNumber:
		trackingInc = 1
	case models.SearchTypeShippingMark:
		markInc = 1
	}

	stats := models.DailySearchStats{
		Date:                   date,
		TotalSearches:          1,
		SuccessfulSearches:     successInc,
		FailedSearches:         failedInc,
		TrackingNumberSearches: trackingInc,
		ShippingMarkSearches:   markInc,
	}

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_searches":           gorm.Expr("daily_search_stats.total_searches + 1"),
			"successful_searches":      gorm.Expr("daily_search_stats.successful_searches + ?", successInc),
			"failed_searches":          gorm.Expr("daily_search_stats.failed_searches + ?", failedInc),
			"tracking_number_searches": gorm.Expr("daily_search_stats.tracking_number_searches + ?", trackingInc),
			"shipping_mark_searches":   gorm.Expr("daily_search_stats.shipping_mark_searches + ?", markInc),
			"updated_at":               gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&stats).Error
	if err != nil {
		return fmt.Errorf("failed to upsert daily search stats for %s: %w", date, err)
	}

	return nil
}

// ListRange retrieves stats rows for dates in [from, to], oldest first
func (r *DailySearchStatsRepositoryImpl) ListRange(ctx context.Context, from, to string) ([]*models.DailySearchStats, error) {
	db := r.getDB(ctx)

	var stats []*models.DailySearchStats
	err := db.Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list daily search stats: %w", err)
	}

	return stats, nil
}

// Summary aggregates all recorded days into a single totals row
func (r *DailySearchStatsRepositoryImpl) Summary(ctx context.Context) (*models.SearchStatsSummary, error) {
	db := r.getDB(ctx)

	var summary models.SearchStatsSummary
	err := db.Model(&models.DailySearchStats{}).
		Select(
			"COALESCE(SUM(total_searches), 0) AS total_searches, " +
				"COALESCE(SUM(successful_searches), 0) AS successful_searches, " +
				"COALESCE(SUM(failed_searches), 0) AS failed_searches, " +
				"COALESCE(SUM(tracking_number_searches), 0) AS tracking_number_searches, " +
				"COALESCE(SUM(shipping_mark_searches), 0) AS shipping_mark_searches, " +
				"COUNT(*) AS days_recorded").
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize search stats: %w", err)
	}

	return &summary, nil
}
