package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SheetsAPI fetches cell ranges from a spreadsheet source. Implementations
// must be safe for concurrent use.
type SheetsAPI interface {
	FetchRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

// SheetsClient reads public spreadsheet ranges through the Google Sheets v4
// values API with an API key. Only read access is needed so the full OAuth
// dance is avoided.
type SheetsClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewSheetsClient creates a Sheets values API client
func NewSheetsClient(apiKey string, timeout time.Duration) *SheetsClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SheetsClient{
		BaseURL:    "https://sheets.googleapis.com/v4/spreadsheets",
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type valuesResponse struct {
	Range          string  `json:"range"`
	MajorDimension string  `json:"majorDimension"`
	Values         [][]any `json:"values"`
}

// FetchRange retrieves one A1-notation range as rows of display strings.
// Numeric cells keep their unformatted value so date serials survive intact.
func (c *SheetsClient) FetchRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", strings.TrimRight(c.BaseURL, "/"), url.PathEscape(spreadsheetID), url.PathEscape(readRange))

	q := url.Values{}
	q.Set("key", c.APIKey)
	q.Set("valueRenderOption", "UNFORMATTED_VALUE")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: build request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets: fetch %s: %w", readRange, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("sheets: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets: fetch %s: status %d: %s", readRange, resp.StatusCode, truncateBody(body))
	}

	var vr valuesResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("sheets: decode response: %w", err)
	}

	rows := make([][]string, 0, len(vr.Values))
	for _, raw := range vr.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, cellToString(cell))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// cellToString renders a JSON cell value without losing integer serials to
// float formatting.
func cellToString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truncateBody(body []byte) string {
	const max = 256
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
