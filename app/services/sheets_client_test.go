package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRangeParsesValues(t *testing.T) {
	var gotPath, gotKey, gotRender string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotRender = r.URL.Query().Get("valueRenderOption")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "Sheet1!A1:I3",
			"majorDimension": "ROWS",
			"values": [
				["Shipping Mark", "Date Received", "Date Loaded"],
				["KOFI-ACCRA", 45808, 2.5],
				["AMA-TEMA", true, null]
			]
		}`))
	}))
	defer server.Close()

	client := NewSheetsClient("test-api-key", time.Second)
	client.BaseURL = server.URL

	rows, err := client.FetchRange(context.Background(), "sheet-id", "Sheet1!A1:I")
	require.NoError(t, err)

	assert.Equal(t, "/sheet-id/values/Sheet1!A1:I", gotPath)
	assert.Equal(t, "test-api-key", gotKey)
	assert.Equal(t, "UNFORMATTED_VALUE", gotRender)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Shipping Mark", "Date Received", "Date Loaded"}, rows[0])
	// integer serials must not pick up float formatting
	assert.Equal(t, []string{"KOFI-ACCRA", "45808", "2.5"}, rows[1])
	assert.Equal(t, []string{"AMA-TEMA", "TRUE", ""}, rows[2])
}

func TestFetchRangeEmptySheet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"range": "Sheet1!A1:I1", "majorDimension": "ROWS"}`))
	}))
	defer server.Close()

	client := NewSheetsClient("test-api-key", time.Second)
	client.BaseURL = server.URL

	rows, err := client.FetchRange(context.Background(), "sheet-id", "Sheet1!A1:I")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchRangeNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "The caller does not have permission"}}`))
	}))
	defer server.Close()

	client := NewSheetsClient("bad-key", time.Second)
	client.BaseURL = server.URL

	_, err := client.FetchRange(context.Background(), "sheet-id", "Sheet1!A1:I")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestFetchRangeMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewSheetsClient("test-api-key", time.Second)
	client.BaseURL = server.URL

	_, err := client.FetchRange(context.Background(), "sheet-id", "Sheet1!A1:I")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestFetchRangeContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewSheetsClient("test-api-key", time.Second)
	client.BaseURL = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchRange(ctx, "sheet-id", "Sheet1!A1:I")
	require.Error(t, err)
}
