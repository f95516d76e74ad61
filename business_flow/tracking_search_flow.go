// Package businessflow contains the core business logic and use cases for cargo tracking workflows
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/edzeame-del/ghana-cargo-logistics/repository"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"github.com/redis/go-redis/v9"
)

const (
	maxSearchTerms    = 10
	maxSearchTermLen  = 100
	searchCacheTTL    = 60 * time.Second
	searchCachePrefix = "tracking:search:"
)

// ClassifySearchTerm decides how a free-text term should be looked up. A term
// that is alphanumeric-only, at least six characters, and contains at least
// one digit is treated as a tracking number; everything else is treated as a
// shipping mark. Shipping marks are typically short alphabetic customer
// labels while carrier tracking numbers always carry digits.
func ClassifySearchTerm(term string) string {
	if len(term) < utils.TrackingNumberMinLen {
		return models.SearchTypeShippingMark
	}

	hasDigit := false
	for _, r := range term {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return models.SearchTypeShippingMark
		}
	}

	if !hasDigit {
		return models.SearchTypeShippingMark
	}
	return models.SearchTypeTrackingNumber
}

// TrackingSearchFlow handles public cargo lookups
type TrackingSearchFlow interface {
	Search(ctx context.Context, rawQuery string, metadata *ClientMetadata) (*dto.TrackingSearchResponse, error)
}

// TrackingSearchFlowImpl implements the public search business flow
type TrackingSearchFlowImpl struct {
	trackingRepo  repository.TrackingRecordRepository
	searchLogRepo repository.SearchLogRepository
	statsRepo     repository.DailySearchStatsRepository
	rc            *redis.Client
	now           func() time.Time
}

// NewTrackingSearchFlow creates a new tracking search flow instance. The
// redis client may be nil, in which case response caching is disabled.
func NewTrackingSearchFlow(
	trackingRepo repository.TrackingRecordRepository,
	searchLogRepo repository.SearchLogRepository,
	statsRepo repository.DailySearchStatsRepository,
	rc *redis.Client,
	now func() time.Time,
) TrackingSearchFlow {
	if now == nil {
		now = utils.UTCNow
	}
	return &TrackingSearchFlowImpl{
		trackingRepo:  trackingRepo,
		searchLogRepo: searchLogRepo,
		statsRepo:     statsRepo,
		rc:            rc,
		now:           now,
	}
}

// Search looks up a comma-separated list of terms, classifying each term
// independently and merging the results. Every individual term is logged
// whether or not it matched, including repeats served from the response
// cache; logging failures never fail the search.
func (f *TrackingSearchFlowImpl) Search(ctx context.Context, rawQuery string, metadata *ClientMetadata) (*dto.TrackingSearchResponse, error) {
	terms, err := splitSearchTerms(rawQuery)
	if err != nil {
		return nil, NewBusinessError("SEARCH_VALIDATION_FAILED", "Search validation failed", err)
	}

	if cached := f.cachedSearch(ctx, terms); cached != nil {
		for _, tr := range cached.Terms {
			f.logSearch(ctx, tr.Term, tr.SearchType, tr.ResultsCount, metadata)
		}
		return cached.Response, nil
	}

	merged := make([]*models.TrackingRecord, 0)
	seen := make(map[uint]bool)
	searchTypes := make([]string, 0, len(terms))
	termResults := make([]cachedTermResult, 0, len(terms))

	for _, term := range terms {
		searchType := ClassifySearchTerm(term)
		searchTypes = append(searchTypes, searchType)

		records, err := f.lookupWithRetry(ctx, term, searchType)
		if err != nil {
			return nil, NewBusinessError("SEARCH_UNAVAILABLE", "Search is temporarily unavailable", ErrSearchUnavailable)
		}

		f.logSearch(ctx, term, searchType, len(records), metadata)
		termResults = append(termResults, cachedTermResult{
			Term:         term,
			SearchType:   searchType,
			ResultsCount: len(records),
		})

		for _, record := range records {
			if record == nil || seen[record.ID] {
				continue
			}
			seen[record.ID] = true
			merged = append(merged, record)
		}
	}

	sortSearchResults(merged)

	resp := &dto.TrackingSearchResponse{
		Found:   len(merged) > 0,
		Records: ToTrackingRecordDTOs(merged),
		Message: searchOutcomeMessage(len(merged), searchTypes),
	}

	f.cacheSearch(ctx, terms, &cachedSearch{Response: resp, Terms: termResults})

	return resp, nil
}

// lookupWithRetry executes one term lookup with bounded exponential backoff
// so a transient storage hiccup does not fail the visitor's request.
func (f *TrackingSearchFlowImpl) lookupWithRetry(ctx context.Context, term, searchType string) ([]*models.TrackingRecord, error) {
	var records []*models.TrackingRecord

	err := utils.Retry(ctx, utils.SearchMaxAttempts, utils.SearchRetryBaseDelay, func() error {
		var err error
		if searchType == models.SearchTypeTrackingNumber {
			records, err = f.trackingRepo.SearchByTrackingNumber(ctx, term)
		} else {
			visibleSince := f.now().AddDate(0, 0, -utils.ShippingMarkVisibilityDays).Format(utils.DateLayout)
			records, err = f.trackingRepo.SearchByShippingMark(ctx, term, visibleSince)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// logSearch records one search attempt and bumps the daily counters.
// Both writes are best-effort.
func (f *TrackingSearchFlowImpl) logSearch(ctx context.Context, term, searchType string, resultsCount int, metadata *ClientMetadata) {
	now := f.now()

	log := &models.SearchLog{
		SearchTerm:   term,
		SearchType:   searchType,
		Success:      resultsCount > 0,
		ResultsCount: resultsCount,
		Timestamp:    now,
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			log.IPAddress = utils.ToPtr(metadata.IPAddress)
		}
		if metadata.UserAgent != "" {
			log.UserAgent = utils.ToPtr(metadata.UserAgent)
		}
	}

	_ = f.searchLogRepo.Save(ctx, log)
	_ = f.statsRepo.IncrementForSearch(ctx, now.Format(utils.DateLayout), searchType, resultsCount > 0)
}

func (f *TrackingSearchFlowImpl) cacheKey(terms []string) string {
	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
	}
	sort.Strings(lowered)
	return searchCachePrefix + strings.Join(lowered, ",")
}

// cachedSearch is the cached envelope for one term set. The per-term results
// ride along with the response so a cache hit can still log every attempt
// with its real classification and match count.
type cachedSearch struct {
	Response *dto.TrackingSearchResponse `json:"response"`
	Terms    []cachedTermResult          `json:"terms"`
}

type cachedTermResult struct {
	Term         string `json:"term"`
	SearchType   string `json:"search_type"`
	ResultsCount int    `json:"results_count"`
}

func (f *TrackingSearchFlowImpl) cachedSearch(ctx context.Context, terms []string) *cachedSearch {
	if f.rc == nil {
		return nil
	}

	bs, err := f.rc.Get(ctx, f.cacheKey(terms)).Bytes()
	if err != nil || len(bs) == 0 {
		return nil
	}

	var cached cachedSearch
	if err := json.Unmarshal(bs, &cached); err != nil || cached.Response == nil {
		return nil
	}
	return &cached
}

func (f *TrackingSearchFlowImpl) cacheSearch(ctx context.Context, terms []string, cached *cachedSearch) {
	if f.rc == nil {
		return
	}

	bs, err := json.Marshal(cached)
	if err != nil {
		return
	}
	_ = f.rc.Set(ctx, f.cacheKey(terms), bs, searchCacheTTL).Err()
}

// splitSearchTerms parses a comma-separated query into trimmed, de-duplicated
// terms, rejecting empty, oversized, or over-long inputs.
func splitSearchTerms(rawQuery string) ([]string, error) {
	parts := strings.Split(rawQuery, ",")

	terms := make([]string, 0, len(parts))
	seen := make(map[string]bool)
	for _, part := range parts {
		term := strings.TrimSpace(part)
		if term == "" {
			continue
		}
		if len(term) > maxSearchTermLen {
			return nil, ErrSearchTermTooLong
		}
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, term)
	}

	if len(terms) == 0 {
		return nil, ErrSearchTermRequired
	}
	if len(terms) > maxSearchTerms {
		return nil, ErrTooManySearchTerms
	}

	return terms, nil
}

// sortSearchResults orders merged results for display: still-pending cargo
// first, then most recently received, then most recently created.
func sortSearchResults(records []*models.TrackingRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		pi := isPendingStatus(records[i].Status)
		pj := isPendingStatus(records[j].Status)
		if pi != pj {
			return pi
		}
		if records[i].DateReceived != records[j].DateReceived {
			return records[i].DateReceived > records[j].DateReceived
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}

func isPendingStatus(status string) bool {
	return strings.Contains(strings.ToLower(status), "pending")
}

// searchOutcomeMessage names the inferred category on a miss so the visitor
// knows which identifier kind was assumed.
func searchOutcomeMessage(matches int, searchTypes []string) string {
	if matches > 0 {
		return fmt.Sprintf("Found %d matching record(s)", matches)
	}

	hasTracking := false
	hasMark := false
	for _, st := range searchTypes {
		if st == models.SearchTypeTrackingNumber {
			hasTracking = true
		} else {
			hasMark = true
		}
	}

	switch {
	case hasTracking && hasMark:
		return "No records found for the provided tracking numbers or shipping marks"
	case hasTracking:
		return "No records found for the provided tracking number(s)"
	default:
		return "No records found for the provided shipping mark(s)"
	}
}
