package businessflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edzeame-del/ghana-cargo-logistics/models"
)

func TestHeatmapZeroFillsMissingDays(t *testing.T) {
	statsRepo := &fakeStatsRepo{
		stats: []*models.DailySearchStats{
			{Date: "2025-06-13", TotalSearches: 4, SuccessfulSearches: 3, FailedSearches: 1, TrackingNumberSearches: 2, ShippingMarkSearches: 2},
			{Date: "2025-06-15", TotalSearches: 1, SuccessfulSearches: 1, TrackingNumberSearches: 1},
		},
	}
	flow := NewSearchAnalyticsFlow(&fakeSearchLogRepo{}, statsRepo, fixedNow)

	result, err := flow.Heatmap(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 7, result.Days)
	assert.Equal(t, "2025-06-09", result.StartDate)
	assert.Equal(t, "2025-06-15", result.EndDate)
	require.Len(t, result.Series, 7)

	// continuous daily series, oldest first
	assert.Equal(t, "2025-06-09", result.Series[0].Date)
	assert.Equal(t, "2025-06-15", result.Series[6].Date)

	// days with no stats row come back as zeros
	assert.Equal(t, 0, result.Series[0].TotalSearches)
	assert.Equal(t, 0, result.Series[5].TotalSearches)

	assert.Equal(t, 4, result.Series[4].TotalSearches)
	assert.Equal(t, 3, result.Series[4].SuccessfulSearches)
	assert.Equal(t, 1, result.Series[4].FailedSearches)
	assert.Equal(t, 2, result.Series[4].TrackingNumberSearches)
	assert.Equal(t, 2, result.Series[4].ShippingMarkSearches)

	assert.Equal(t, 1, result.Series[6].TotalSearches)
}

func TestHeatmapDefaultsToThirtyDays(t *testing.T) {
	flow := NewSearchAnalyticsFlow(&fakeSearchLogRepo{}, &fakeStatsRepo{}, fixedNow)

	result, err := flow.Heatmap(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, result.Days)
	assert.Len(t, result.Series, 30)
	assert.Equal(t, "2025-05-17", result.StartDate)
}

func TestHeatmapRejectsOutOfRangeWindow(t *testing.T) {
	flow := NewSearchAnalyticsFlow(&fakeSearchLogRepo{}, &fakeStatsRepo{}, fixedNow)

	_, err := flow.Heatmap(context.Background(), -1)
	require.Error(t, err)
	assert.True(t, IsInvalidDateRange(err))

	_, err = flow.Heatmap(context.Background(), 366)
	require.Error(t, err)
	assert.True(t, IsInvalidDateRange(err))
}

func TestStatsComputesSuccessRate(t *testing.T) {
	statsRepo := &fakeStatsRepo{
		summary: &models.SearchStatsSummary{
			TotalSearches:          200,
			SuccessfulSearches:     150,
			FailedSearches:         50,
			TrackingNumberSearches: 120,
			ShippingMarkSearches:   80,
			DaysRecorded:           12,
		},
	}
	flow := NewSearchAnalyticsFlow(&fakeSearchLogRepo{}, statsRepo, fixedNow)

	result, err := flow.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200, result.TotalSearches)
	assert.InDelta(t, 0.75, result.SuccessRate, 0.0001)
	assert.Equal(t, 12, result.DaysRecorded)
}

func TestStatsHandlesEmptyHistory(t *testing.T) {
	flow := NewSearchAnalyticsFlow(&fakeSearchLogRepo{}, &fakeStatsRepo{}, fixedNow)

	result, err := flow.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalSearches)
	assert.Equal(t, 0.0, result.SuccessRate)
}

func TestListLogsReturnsPage(t *testing.T) {
	logRepo := &fakeSearchLogRepo{
		saved: []*models.SearchLog{
			{ID: 1, SearchTerm: "SF123456", SearchType: models.SearchTypeTrackingNumber, Success: true, ResultsCount: 1},
			{ID: 2, SearchTerm: "kwame", SearchType: models.SearchTypeShippingMark, Success: false},
		},
	}
	flow := NewSearchAnalyticsFlow(logRepo, &fakeStatsRepo{}, fixedNow)

	result, err := flow.ListLogs(context.Background(), models.SearchLogFilter{}, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Logs, 2)
	assert.Equal(t, "SF123456", result.Logs[0].SearchTerm)
	assert.Equal(t, int64(2), result.Pagination.Total)
}

func TestListLogsInvalidPagination(t *testing.T) {
	flow := NewSearchAnalyticsFlow(&fakeSearchLogRepo{}, &fakeStatsRepo{}, fixedNow)

	_, err := flow.ListLogs(context.Background(), models.SearchLogFilter{}, 0, 20)
	require.Error(t, err)
	assert.True(t, IsInvalidPage(err))
}
