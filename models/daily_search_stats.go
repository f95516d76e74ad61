package models

import "time"

// DailySearchStats keeps running counters per calendar date. Counters for a
// date always equal the sum of that date's SearchLog rows; the repository
// enforces this with an atomic upsert per logged search.
type DailySearchStats struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Date                  string    `gorm:"size:10;not null;uniqueIndex:idx_daily_search_stats_date" json:"date"`
	TotalSearches         int       `gorm:"not null;default:0" json:"total_searches"`
	SuccessfulSearches    int       `gorm:"not null;default:0" json:"successful_searches"`
	FailedSearches        int       `gorm:"not null;default:0" json:"failed_searches"`
	TrackingNumberSearches int      `gorm:"not null;default:0" json:"tracking_number_searches"`
	ShippingMarkSearches  int       `gorm:"not null;default:0" json:"shipping_mark_searches"`
	CreatedAt             time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName returns the table name for DailySearchStats
func (DailySearchStats) TableName() string { return "daily_search_stats" }

// DailySearchStatsFilter represents filter criteria for daily stats queries
type DailySearchStatsFilter struct {
	Date     *string
	DateFrom *string
	DateTo   *string
}

// SearchStatsSummary aggregates counters across all recorded days.
type SearchStatsSummary struct {
	TotalSearches          int `json:"total_searches"`
	SuccessfulSearches     int `json:"successful_searches"`
	FailedSearches         int `json:"failed_searches"`
	TrackingNumberSearches int `json:"tracking_number_searches"`
	ShippingMarkSearches   int `json:"shipping_mark_searches"`
	DaysRecorded           int `json:"days_recorded"`
}
