// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for search logging
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToTrackingRecordDTO converts a tracking record model to its public DTO
func ToTrackingRecordDTO(record models.TrackingRecord) dto.TrackingRecordDTO {
	return dto.TrackingRecordDTO{
		ID:             record.ID,
		ShippingMark:   record.ShippingMark,
		TrackingNumber: record.TrackingNumber,
		Quantity:       record.Quantity,
		CBM:            record.CBM,
		DateReceived:   record.DateReceived,
		DateLoaded:     record.DateLoaded,
		ETA:            record.ETA,
		Status:         record.Status,
		CreatedAt:      record.CreatedAt.Format(time.RFC3339),
	}
}

// ToTrackingRecordDTOs converts a slice of tracking records
func ToTrackingRecordDTOs(records []*models.TrackingRecord) []dto.TrackingRecordDTO {
	out := make([]dto.TrackingRecordDTO, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		out = append(out, ToTrackingRecordDTO(*record))
	}
	return out
}

// ToVesselDTO converts a vessel model to its DTO
func ToVesselDTO(vessel models.Vessel) dto.VesselDTO {
	return dto.VesselDTO{
		ID:           vessel.ID,
		Name:         vessel.Name,
		IMO:          vessel.IMO,
		MMSI:         vessel.MMSI,
		TrackingURL:  vessel.TrackingURL,
		ThumbnailURL: vessel.ThumbnailURL,
		CreatedAt:    vessel.CreatedAt.Format(time.RFC3339),
	}
}

// ToSearchLogDTO converts a search log model to its DTO
func ToSearchLogDTO(log models.SearchLog) dto.SearchLogDTO {
	d := dto.SearchLogDTO{
		ID:           log.ID,
		SearchTerm:   log.SearchTerm,
		SearchType:   log.SearchType,
		Success:      log.Success,
		ResultsCount: log.ResultsCount,
		Timestamp:    log.Timestamp.Format(time.RFC3339),
	}
	if log.IPAddress != nil {
		d.IPAddress = *log.IPAddress
	}
	if log.UserAgent != nil {
		d.UserAgent = *log.UserAgent
	}
	return d
}
