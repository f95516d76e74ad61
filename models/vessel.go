package models

import "time"

// Vessel is a reference entity for the ships carrying consolidated
// containers. CRUD only.
type Vessel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	IMO          string    `gorm:"column:imo;size:16;not null" json:"imo"`
	MMSI         string    `gorm:"column:mmsi;size:16;not null" json:"mmsi"`
	TrackingURL  string    `gorm:"type:text;not null" json:"tracking_url"`
	ThumbnailURL string    `gorm:"type:text;not null" json:"thumbnail_url"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName returns the table name for Vessel
func (Vessel) TableName() string { return "vessels" }

// VesselFilter represents filter criteria for vessel queries
type VesselFilter struct {
	ID   *uint
	Name *string
	IMO  *string
}
