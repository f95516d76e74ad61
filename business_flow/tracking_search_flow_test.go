package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestClassifySearchTerm(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"carrier number", "SF1234567890", models.SearchTypeTrackingNumber},
		{"digits only", "1234567890", models.SearchTypeTrackingNumber},
		{"exactly six chars with digit", "ABC123", models.SearchTypeTrackingNumber},
		{"short with digit", "AB123", models.SearchTypeShippingMark},
		{"letters only", "KWAMEACCRA", models.SearchTypeShippingMark},
		{"contains space", "SF 12345678", models.SearchTypeShippingMark},
		{"contains dash", "SF-12345678", models.SearchTypeShippingMark},
		{"empty", "", models.SearchTypeShippingMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySearchTerm(tt.term))
		})
	}
}

func TestSplitSearchTerms(t *testing.T) {
	t.Run("TrimsAndDeduplicates", func(t *testing.T) {
		terms, err := splitSearchTerms(" SF123456 , kwame, sf123456 ,KWAME")
		require.NoError(t, err)
		assert.Equal(t, []string{"SF123456", "kwame"}, terms)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := splitSearchTerms("  , ,")
		assert.ErrorIs(t, err, ErrSearchTermRequired)
	})

	t.Run("TermTooLong", func(t *testing.T) {
		long := make([]byte, maxSearchTermLen+1)
		for i := range long {
			long[i] = 'A'
		}
		_, err := splitSearchTerms(string(long))
		assert.ErrorIs(t, err, ErrSearchTermTooLong)
	})

	t.Run("TooManyTerms", func(t *testing.T) {
		raw := "a1,b2,c3,d4,e5,f6,g7,h8,i9,j0,k1"
		_, err := splitSearchTerms(raw)
		assert.ErrorIs(t, err, ErrTooManySearchTerms)
	})
}

func TestSortSearchResults(t *testing.T) {
	older := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	records := []*models.TrackingRecord{
		{ID: 1, Status: "Loaded", DateReceived: "2025-06-10", CreatedAt: older},
		{ID: 2, Status: "Pending Loading", DateReceived: "2025-06-01", CreatedAt: older},
		{ID: 3, Status: "Loaded", DateReceived: "2025-06-12", CreatedAt: older},
		{ID: 4, Status: "Loaded", DateReceived: "2025-06-10", CreatedAt: newer},
	}

	sortSearchResults(records)

	// Pending first, then date received descending, then created at descending
	assert.Equal(t, uint(2), records[0].ID)
	assert.Equal(t, uint(3), records[1].ID)
	assert.Equal(t, uint(4), records[2].ID)
	assert.Equal(t, uint(1), records[3].ID)
}

func TestSearchMergesAndLogs(t *testing.T) {
	shared := &models.TrackingRecord{ID: 7, TrackingNumber: "SF123456", ShippingMark: "KWAME", Status: "Loaded", DateReceived: "2025-06-10"}

	trackingRepo := &fakeTrackingRepo{
		searchByTrackingFn: func(term string) ([]*models.TrackingRecord, error) {
			return []*models.TrackingRecord{shared}, nil
		},
		searchByMarkFn: func(term, visibleSince string) ([]*models.TrackingRecord, error) {
			// The public shipping-mark window is 14 days
			assert.Equal(t, fixedNow().AddDate(0, 0, -utils.ShippingMarkVisibilityDays).Format(utils.DateLayout), visibleSince)
			return []*models.TrackingRecord{
				shared,
				{ID: 8, ShippingMark: "KWAME", Status: "Pending Loading"},
			}, nil
		},
	}
	logRepo := &fakeSearchLogRepo{}
	statsRepo := &fakeStatsRepo{}

	flow := NewTrackingSearchFlow(trackingRepo, logRepo, statsRepo, nil, fixedNow)

	resp, err := flow.Search(context.Background(), "SF123456,KWAME", NewClientMetadata("203.0.113.9", "test-agent"))
	require.NoError(t, err)

	assert.True(t, resp.Found)
	// Record 7 appears in both lookups but must be returned once
	require.Len(t, resp.Records, 2)
	assert.Equal(t, uint(8), resp.Records[0].ID)
	assert.Equal(t, uint(7), resp.Records[1].ID)
	assert.Equal(t, "Found 2 matching record(s)", resp.Message)

	// One log row and one counter bump per term
	require.Len(t, logRepo.saved, 2)
	assert.Equal(t, models.SearchTypeTrackingNumber, logRepo.saved[0].SearchType)
	assert.Equal(t, models.SearchTypeShippingMark, logRepo.saved[1].SearchType)
	assert.True(t, logRepo.saved[0].Success)
	assert.Equal(t, 1, logRepo.saved[0].ResultsCount)
	require.NotNil(t, logRepo.saved[0].IPAddress)
	assert.Equal(t, "203.0.113.9", *logRepo.saved[0].IPAddress)

	require.Len(t, statsRepo.increments, 2)
	assert.Equal(t, "2025-06-15", statsRepo.increments[0].date)
}

func TestSearchMissMessages(t *testing.T) {
	trackingRepo := &fakeTrackingRepo{}
	flow := NewTrackingSearchFlow(trackingRepo, &fakeSearchLogRepo{}, &fakeStatsRepo{}, nil, fixedNow)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"tracking only", "SF123456", "No records found for the provided tracking number(s)"},
		{"mark only", "KWAME", "No records found for the provided shipping mark(s)"},
		{"mixed", "SF123456,KWAME", "No records found for the provided tracking numbers or shipping marks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := flow.Search(context.Background(), tt.query, nil)
			require.NoError(t, err)
			assert.False(t, resp.Found)
			assert.Empty(t, resp.Records)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestSearchRetriesThenFails(t *testing.T) {
	attempts := 0
	trackingRepo := &fakeTrackingRepo{
		searchByTrackingFn: func(term string) ([]*models.TrackingRecord, error) {
			attempts++
			return nil, errors.New("connection refused")
		},
	}
	logRepo := &fakeSearchLogRepo{}

	flow := NewTrackingSearchFlow(trackingRepo, logRepo, &fakeStatsRepo{}, nil, fixedNow)

	_, err := flow.Search(context.Background(), "SF123456", nil)
	require.Error(t, err)
	assert.True(t, IsSearchUnavailable(err))
	assert.Equal(t, utils.SearchMaxAttempts, attempts)
	// A failed lookup is not logged as a search attempt
	assert.Empty(t, logRepo.saved)
}

func TestSearchRecoversWithinRetryBudget(t *testing.T) {
	attempts := 0
	trackingRepo := &fakeTrackingRepo{
		searchByTrackingFn: func(term string) ([]*models.TrackingRecord, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("connection refused")
			}
			return []*models.TrackingRecord{{ID: 1, TrackingNumber: "SF123456"}}, nil
		},
	}

	flow := NewTrackingSearchFlow(trackingRepo, &fakeSearchLogRepo{}, &fakeStatsRepo{}, nil, fixedNow)

	resp, err := flow.Search(context.Background(), "SF123456", nil)
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, 3, attempts)
}

func TestSearchCacheHitStillLogs(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	lookups := 0
	trackingRepo := &fakeTrackingRepo{
		searchByTrackingFn: func(term string) ([]*models.TrackingRecord, error) {
			lookups++
			if lookups > 1 {
				return nil, errors.New("lookup after cache fill")
			}
			return []*models.TrackingRecord{{ID: 7, TrackingNumber: "SF123456", Status: "Loaded"}}, nil
		},
		searchByMarkFn: func(term, visibleSince string) ([]*models.TrackingRecord, error) {
			return []*models.TrackingRecord{{ID: 8, ShippingMark: "KWAME", Status: "Pending Loading"}}, nil
		},
	}
	logRepo := &fakeSearchLogRepo{}
	statsRepo := &fakeStatsRepo{}

	flow := NewTrackingSearchFlow(trackingRepo, logRepo, statsRepo, rc, fixedNow)

	first, err := flow.Search(context.Background(), "SF123456,KWAME", NewClientMetadata("203.0.113.9", "test-agent"))
	require.NoError(t, err)
	require.True(t, first.Found)
	require.Len(t, logRepo.saved, 2)
	require.Len(t, statsRepo.increments, 2)

	// Second identical search is served from the cache: the tracking repo
	// would error if consulted again, so an unchanged response proves the
	// lookups were skipped.
	second, err := flow.Search(context.Background(), "SF123456,KWAME", NewClientMetadata("203.0.113.9", "test-agent"))
	require.NoError(t, err)
	assert.Equal(t, 1, lookups)
	assert.True(t, second.Found)
	assert.Equal(t, first.Message, second.Message)
	require.Len(t, second.Records, len(first.Records))

	// The cached response still produces one log row and one counter bump
	// per term, with the term's real classification and match count.
	require.Len(t, logRepo.saved, 4)
	assert.Equal(t, "SF123456", logRepo.saved[2].SearchTerm)
	assert.Equal(t, models.SearchTypeTrackingNumber, logRepo.saved[2].SearchType)
	assert.Equal(t, 1, logRepo.saved[2].ResultsCount)
	assert.True(t, logRepo.saved[2].Success)
	assert.Equal(t, "KWAME", logRepo.saved[3].SearchTerm)
	assert.Equal(t, models.SearchTypeShippingMark, logRepo.saved[3].SearchType)

	require.Len(t, statsRepo.increments, 4)
	assert.Equal(t, models.SearchTypeTrackingNumber, statsRepo.increments[2].searchType)
	assert.True(t, statsRepo.increments[2].success)
}

func TestSearchValidationErrors(t *testing.T) {
	flow := NewTrackingSearchFlow(&fakeTrackingRepo{}, &fakeSearchLogRepo{}, &fakeStatsRepo{}, nil, fixedNow)

	_, err := flow.Search(context.Background(), "   ", nil)
	assert.True(t, IsSearchTermRequired(err))
}
