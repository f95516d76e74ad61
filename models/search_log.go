package models

import "time"

// Search type constants
const (
	SearchTypeTrackingNumber = "tracking_number"
	SearchTypeShippingMark   = "shipping_mark"
)

// SearchLog records a single public search attempt, one row per
// comma-separated term. Rows are immutable and never deleted.
type SearchLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SearchTerm   string    `gorm:"type:text;not null" json:"search_term"`
	SearchType   string    `gorm:"size:32;not null;index:idx_search_logs_type" json:"search_type"`
	Success      bool      `gorm:"not null" json:"success"`
	ResultsCount int       `gorm:"not null;default:0" json:"results_count"`
	IPAddress    *string   `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent    *string   `gorm:"type:text" json:"user_agent,omitempty"`
	Timestamp    time.Time `gorm:"default:CURRENT_TIMESTAMP;not null;index:idx_search_logs_timestamp" json:"timestamp"`
}

// TableName returns the table name for SearchLog
func (SearchLog) TableName() string { return "search_logs" }

// SearchLogFilter represents filter criteria for search log queries
type SearchLogFilter struct {
	SearchType *string
	Success    *bool
	After      *time.Time
	Before     *time.Time
}
