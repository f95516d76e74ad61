// Package businessflow contains the core business logic and use cases for cargo tracking workflows
package businessflow

import (
	"context"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/edzeame-del/ghana-cargo-logistics/repository"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
)

const (
	defaultHeatmapDays = 30
	maxHeatmapDays     = 365
)

// SearchAnalyticsFlow exposes logged searches and their daily aggregates
type SearchAnalyticsFlow interface {
	ListLogs(ctx context.Context, filter models.SearchLogFilter, page, limit int) (*dto.SearchLogListResponse, error)
	Heatmap(ctx context.Context, days int) (*dto.SearchHeatmapResponse, error)
	Stats(ctx context.Context) (*dto.SearchStatsResponse, error)
}

// SearchAnalyticsFlowImpl implements the search analytics business flow
type SearchAnalyticsFlowImpl struct {
	searchLogRepo repository.SearchLogRepository
	statsRepo     repository.DailySearchStatsRepository
	now           func() time.Time
}

// NewSearchAnalyticsFlow creates a new search analytics flow instance
func NewSearchAnalyticsFlow(
	searchLogRepo repository.SearchLogRepository,
	statsRepo repository.DailySearchStatsRepository,
	now func() time.Time,
) SearchAnalyticsFlow {
	if now == nil {
		now = utils.UTCNow
	}
	return &SearchAnalyticsFlowImpl{
		searchLogRepo: searchLogRepo,
		statsRepo:     statsRepo,
		now:           now,
	}
}

// ListLogs returns one page of logged searches, newest first
func (f *SearchAnalyticsFlowImpl) ListLogs(ctx context.Context, filter models.SearchLogFilter, page, limit int) (*dto.SearchLogListResponse, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, NewBusinessError("SEARCH_LOGS_VALIDATION_FAILED", "Search log listing validation failed", err)
	}

	logs, err := f.searchLogRepo.ListByFilter(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, NewBusinessError("SEARCH_LOGS_FAILED", "Failed to list search logs", err)
	}

	total, err := f.searchLogRepo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("SEARCH_LOGS_FAILED", "Failed to count search logs", err)
	}

	out := make([]dto.SearchLogDTO, 0, len(logs))
	for _, l := range logs {
		if l == nil {
			continue
		}
		out = append(out, ToSearchLogDTO(*l))
	}

	return &dto.SearchLogListResponse{
		Logs:       out,
		Pagination: paginationFor(page, limit, total),
	}, nil
}

// Heatmap returns one row per day for the trailing window, zero-filling days
// with no recorded searches so the client renders a continuous series.
func (f *SearchAnalyticsFlowImpl) Heatmap(ctx context.Context, days int) (*dto.SearchHeatmapResponse, error) {
	if days == 0 {
		days = defaultHeatmapDays
	}
	if days < 1 || days > maxHeatmapDays {
		return nil, NewBusinessError("HEATMAP_VALIDATION_FAILED", "Heatmap validation failed", ErrInvalidDateRange)
	}

	end := f.now()
	start := end.AddDate(0, 0, -(days - 1))
	startDate := start.Format(utils.DateLayout)
	endDate := end.Format(utils.DateLayout)

	rows, err := f.statsRepo.ListRange(ctx, startDate, endDate)
	if err != nil {
		return nil, NewBusinessError("HEATMAP_FAILED", "Failed to load daily search stats", err)
	}

	byDate := make(map[string]*models.DailySearchStats, len(rows))
	for _, row := range rows {
		if row != nil {
			byDate[row.Date] = row
		}
	}

	series := make([]dto.SearchHeatmapDayDTO, 0, days)
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d).Format(utils.DateLayout)
		day := dto.SearchHeatmapDayDTO{Date: date}
		if row, ok := byDate[date]; ok {
			day.TotalSearches = row.TotalSearches
			day.SuccessfulSearches = row.SuccessfulSearches
			day.FailedSearches = row.FailedSearches
			day.TrackingNumberSearches = row.TrackingNumberSearches
			day.ShippingMarkSearches = row.ShippingMarkSearches
		}
		series = append(series, day)
	}

	return &dto.SearchHeatmapResponse{
		Days:      days,
		StartDate: startDate,
		EndDate:   endDate,
		Series:    series,
	}, nil
}

// Stats returns the all-time aggregated totals
func (f *SearchAnalyticsFlowImpl) Stats(ctx context.Context) (*dto.SearchStatsResponse, error) {
	summary, err := f.statsRepo.Summary(ctx)
	if err != nil {
		return nil, NewBusinessError("SEARCH_STATS_FAILED", "Failed to summarize search stats", err)
	}

	successRate := 0.0
	if summary.TotalSearches > 0 {
		successRate = float64(summary.SuccessfulSearches) / float64(summary.TotalSearches)
	}

	return &dto.SearchStatsResponse{
		TotalSearches:          summary.TotalSearches,
		SuccessfulSearches:     summary.SuccessfulSearches,
		FailedSearches:         summary.FailedSearches,
		TrackingNumberSearches: summary.TrackingNumberSearches,
		ShippingMarkSearches:   summary.ShippingMarkSearches,
		SuccessRate:            successRate,
		DaysRecorded:           summary.DaysRecorded,
	}, nil
}
