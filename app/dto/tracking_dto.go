// Package dto
package dto

// TrackingRecordDTO is the wire form of one cargo tracking record
type TrackingRecordDTO struct {
	ID             uint   `json:"id" example:"42"`
	ShippingMark   string `json:"shipping_mark" example:"KOFI-ACCRA"`
	TrackingNumber string `json:"tracking_number" example:"GH2024001234"`
	Quantity       string `json:"quantity" example:"3"`
	CBM            string `json:"cbm" example:"1.25"`
	DateReceived   string `json:"date_received" example:"2025-03-02"`
	DateLoaded     string `json:"date_loaded" example:"2025-03-10"`
	ETA            string `json:"eta" example:"2025-04-24"`
	Status         string `json:"status" example:"Loaded"`
	CreatedAt      string `json:"created_at" example:"2025-03-02T08:30:00Z"`
}

// TrackingSearchResponse is returned by the public search endpoint
type TrackingSearchResponse struct {
	Found   bool                `json:"found"`
	Records []TrackingRecordDTO `json:"records"`
	Message string              `json:"message"`
}

// AdminTrackingSearchResponse is the staff-facing search result page
type AdminTrackingSearchResponse struct {
	Records    []TrackingRecordDTO `json:"records"`
	Pagination PaginationDTO       `json:"pagination"`
}

// TrackingListResponse is one page of the full dataset
type TrackingListResponse struct {
	Records    []TrackingRecordDTO `json:"records"`
	Pagination PaginationDTO       `json:"pagination"`
}

// UploadRowDTO is one pre-parsed spreadsheet row submitted by an admin.
// Dates may arrive in any of the supported source formats; they are
// normalized before storage.
type UploadRowDTO struct {
	ShippingMark   string `json:"shipping_mark" validate:"omitempty,max=500"`
	TrackingNumber string `json:"tracking_number" validate:"omitempty,max=500"`
	Quantity       string `json:"quantity" validate:"omitempty,max=100"`
	CBM            string `json:"cbm" validate:"omitempty,max=100"`
	DateReceived   string `json:"date_received" validate:"omitempty,max=100"`
	DateLoaded     string `json:"date_loaded" validate:"omitempty,max=100"`
	ETA            string `json:"eta" validate:"omitempty,max=100"`
	Status         string `json:"status" validate:"omitempty,max=100"`
}

// UploadTrackingRequest carries a batch of pre-parsed rows
type UploadTrackingRequest struct {
	Rows []UploadRowDTO `json:"rows" validate:"required,min=1,max=10000,dive"`
}

// UploadTrackingResponse reports how an upload batch was handled
type UploadTrackingResponse struct {
	Submitted int    `json:"submitted"`
	Inserted  int    `json:"inserted"`
	Skipped   int    `json:"skipped"`
	Message   string `json:"message"`
}

// BulkDeleteRequest names the records to remove
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,max=10000,dive,gt=0"`
}

// BulkDeleteResponse reports how many records were removed
type BulkDeleteResponse struct {
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}

// CleanupResponse reports the result of a retention sweep
type CleanupResponse struct {
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}

// SyncResponse reports the result of a manually triggered sheet sync
type SyncResponse struct {
	RecordsSynced int    `json:"records_synced"`
	Message       string `json:"message"`
}

// SyncStatusResponse describes the most recent sheet sync
type SyncStatusResponse struct {
	Configured    bool   `json:"configured"`
	Running       bool   `json:"running"`
	LastRunAt     string `json:"last_run_at,omitempty"`
	LastSuccessAt string `json:"last_success_at,omitempty"`
	LastError     string `json:"last_error,omitempty"`
	LastCount     int    `json:"last_count"`
	TotalRecords  int64  `json:"total_records"`
}
