// Package dto
package dto

// VesselDTO is the wire form of one tracked vessel
type VesselDTO struct {
	ID           uint   `json:"id" example:"3"`
	Name         string `json:"name" example:"MSC AROYA"`
	IMO          string `json:"imo" example:"9839272"`
	MMSI         string `json:"mmsi" example:"636019825"`
	TrackingURL  string `json:"tracking_url" example:"https://www.marinetraffic.com/en/ais/details/ships/imo:9839272"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	CreatedAt    string `json:"created_at" example:"2025-01-12T09:00:00Z"`
}

// CreateVesselRequest carries a new vessel definition
type CreateVesselRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=200"`
	IMO          string `json:"imo" validate:"omitempty,numeric,len=7"`
	MMSI         string `json:"mmsi" validate:"omitempty,numeric,len=9"`
	TrackingURL  string `json:"tracking_url" validate:"omitempty,url,max=1000"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url,max=1000"`
}

// UpdateVesselRequest carries replacement vessel fields
type UpdateVesselRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=200"`
	IMO          string `json:"imo" validate:"omitempty,numeric,len=7"`
	MMSI         string `json:"mmsi" validate:"omitempty,numeric,len=9"`
	TrackingURL  string `json:"tracking_url" validate:"omitempty,url,max=1000"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url,max=1000"`
}

// VesselListResponse wraps the full vessel list
type VesselListResponse struct {
	Vessels []VesselDTO `json:"vessels"`
}
