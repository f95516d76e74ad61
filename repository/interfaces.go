// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/edzeame-del/ghana-cargo-logistics/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
}

// TrackingRecordRepository defines operations for cargo tracking records
type TrackingRecordRepository interface {
	Repository[models.TrackingRecord, models.TrackingRecordFilter]
	SearchByTrackingNumber(ctx context.Context, term string) ([]*models.TrackingRecord, error)
	SearchByShippingMark(ctx context.Context, term string, visibleSince string) ([]*models.TrackingRecord, error)
	SearchAdmin(ctx context.Context, term string, limit, offset int) ([]*models.TrackingRecord, int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.TrackingRecord, error)
	CountAll(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, records []*models.TrackingRecord, batchSize int) error
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	DeleteExpired(ctx context.Context, etaCutoff string) (int64, error)
}

// SearchLogRepository defines operations for visitor search logs
type SearchLogRepository interface {
	Repository[models.SearchLog, models.SearchLogFilter]
	ListByFilter(ctx context.Context, filter models.SearchLogFilter, limit, offset int) ([]*models.SearchLog, error)
	CountByFilter(ctx context.Context, filter models.SearchLogFilter) (int64, error)
}

// DailySearchStatsRepository defines operations for aggregated daily search counters
type DailySearchStatsRepository interface {
	Repository[models.DailySearchStats, models.DailySearchStatsFilter]
	IncrementForSearch(ctx context.Context, date string, searchType string, success bool) error
	ListRange(ctx context.Context, from, to string) ([]*models.DailySearchStats, error)
	Summary(ctx context.Context) (*models.SearchStatsSummary, error)
}

// VesselRepository defines operations for tracked vessels
type VesselRepository interface {
	Repository[models.Vessel, models.VesselFilter]
	ListAll(ctx context.Context) ([]*models.Vessel, error)
	Update(ctx context.Context, vessel *models.Vessel) error
	Delete(ctx context.Context, id uint) (int64, error)
}

// UserRepository defines operations for admin users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
}
