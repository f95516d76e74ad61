package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearchFlow struct {
	response *dto.TrackingSearchResponse
	err      error
	queries  []string
}

func (s *stubSearchFlow) Search(ctx context.Context, rawQuery string, metadata *businessflow.ClientMetadata) (*dto.TrackingSearchResponse, error) {
	s.queries = append(s.queries, rawQuery)
	return s.response, s.err
}

func newTrackingTestApp(flow businessflow.TrackingSearchFlow) *fiber.App {
	app := fiber.New()
	handler := NewTrackingHandler(flow)
	app.Get("/api/v1/tracking/:term", handler.Search)
	return app
}

func TestTrackingSearchCountsEachTermByItsOwnType(t *testing.T) {
	flow := &stubSearchFlow{
		response: &dto.TrackingSearchResponse{
			Found:   true,
			Records: []dto.TrackingRecordDTO{{ID: 7}},
			Message: "Found 1 matching record(s)",
		},
	}
	app := newTrackingTestApp(flow)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/tracking/SF123456,KWAME", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"SF123456,KWAME"}, flow.queries)

	// A mixed query bumps one counter per term: the tracking number must
	// not be swallowed into shipping_mark by classifying the raw query.
	expected := `
		# HELP cargo_searches_total Total public cargo searches by type and outcome
		# TYPE cargo_searches_total counter
		cargo_searches_total{outcome="hit",type="shipping_mark"} 1
		cargo_searches_total{outcome="hit",type="tracking_number"} 1
	`
	require.NoError(t, testutil.GatherAndCompare(prometheus.DefaultGatherer, strings.NewReader(expected), "cargo_searches_total"))
}

func TestTrackingSearchNotFound(t *testing.T) {
	flow := &stubSearchFlow{
		response: &dto.TrackingSearchResponse{
			Found:   false,
			Records: []dto.TrackingRecordDTO{},
			Message: "No records found for the provided tracking number(s)",
		},
	}
	app := newTrackingTestApp(flow)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/tracking/SF999999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTrackingSearchErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"term required", businessflow.ErrSearchTermRequired, fiber.StatusBadRequest},
		{"term too long", businessflow.ErrSearchTermTooLong, fiber.StatusBadRequest},
		{"too many terms", businessflow.ErrTooManySearchTerms, fiber.StatusBadRequest},
		{"lookup unavailable", businessflow.ErrSearchUnavailable, fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTrackingTestApp(&stubSearchFlow{err: tt.err})

			resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/tracking/x1", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
