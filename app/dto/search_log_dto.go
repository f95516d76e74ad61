// Package dto
package dto

// SearchLogDTO is the wire form of one logged visitor search
type SearchLogDTO struct {
	ID           uint   `json:"id"`
	SearchTerm   string `json:"search_term" example:"GH2024001234"`
	SearchType   string `json:"search_type" example:"tracking_number"`
	Success      bool   `json:"success"`
	ResultsCount int    `json:"results_count"`
	IPAddress    string `json:"ip_address,omitempty"`
	UserAgent    string `json:"user_agent,omitempty"`
	Timestamp    string `json:"timestamp" example:"2025-03-02T08:30:00Z"`
}

// SearchLogListResponse is one page of logged searches
type SearchLogListResponse struct {
	Logs       []SearchLogDTO `json:"logs"`
	Pagination PaginationDTO  `json:"pagination"`
}

// SearchHeatmapDayDTO is one day's aggregated counters
type SearchHeatmapDayDTO struct {
	Date                   string `json:"date" example:"2025-03-02"`
	TotalSearches          int    `json:"total_searches"`
	SuccessfulSearches     int    `json:"successful_searches"`
	FailedSearches         int    `json:"failed_searches"`
	TrackingNumberSearches int    `json:"tracking_number_searches"`
	ShippingMarkSearches   int    `json:"shipping_mark_searches"`
}

// SearchHeatmapResponse is the per-day activity series for the admin heatmap
type SearchHeatmapResponse struct {
	Days      int                   `json:"days"`
	StartDate string                `json:"start_date"`
	EndDate   string                `json:"end_date"`
	Series    []SearchHeatmapDayDTO `json:"series"`
}

// SearchStatsResponse is the all-time totals summary
type SearchStatsResponse struct {
	TotalSearches          int     `json:"total_searches"`
	SuccessfulSearches     int     `json:"successful_searches"`
	FailedSearches         int     `json:"failed_searches"`
	TrackingNumberSearches int     `json:"tracking_number_searches"`
	ShippingMarkSearches   int     `json:"shipping_mark_searches"`
	SuccessRate            float64 `json:"success_rate"`
	DaysRecorded           int     `json:"days_recorded"`
}
