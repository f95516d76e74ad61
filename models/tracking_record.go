// Package models contains domain entities and business models for the cargo tracking system
package models

import "time"

// TrackingRecord is one row of consolidated-cargo tracking data as
// normalized out of a spreadsheet source. Tracking numbers are supplied by
// carriers and not guaranteed unique; shipping marks are customer labels
// shared by many records. All three date columns hold either "" or a
// canonical YYYY-MM-DD string, never any other format.
type TrackingRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ShippingMark   string    `gorm:"type:text;not null;index:idx_tracking_shipping_mark" json:"shipping_mark"`
	TrackingNumber string    `gorm:"type:text;not null;index:idx_tracking_number" json:"tracking_number"`
	Quantity       string    `gorm:"type:text" json:"quantity"`
	CBM            string    `gorm:"column:cbm;type:text" json:"cbm"`
	DateReceived   string    `gorm:"type:text;index:idx_tracking_date_received" json:"date_received"`
	DateLoaded     string    `gorm:"type:text" json:"date_loaded"`
	ETA            string    `gorm:"column:eta;type:text;index:idx_tracking_eta" json:"eta"`
	Status         string    `gorm:"type:text" json:"status"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName returns the table name for TrackingRecord
func (TrackingRecord) TableName() string { return "tracking_records" }

// TrackingRecordFilter represents filter criteria for tracking record queries
type TrackingRecordFilter struct {
	ID             *uint
	TrackingNumber *string
	ShippingMark   *string
	Status         *string
}
