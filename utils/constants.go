package utils

import (
	"time"
)

// Session time constants
const (
	// SessionTokenTTL is the time-to-live for admin session tokens (24 hours)
	SessionTokenTTL = 24 * time.Hour

	// SessionTokenTTLSeconds is the session token TTL in seconds
	SessionTokenTTLSeconds = 86400
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Cargo domain constants
const (
	// DateLayout is the canonical date format stored on tracking records
	DateLayout = "2006-01-02"

	// TransitDays is the assumed sea transit time from loading to arrival
	// when the sheet carries no explicit ETA
	TransitDays = 45

	// ShippingMarkVisibilityDays is the public visibility window for
	// shipping-mark searches; older non-pending records are hidden
	ShippingMarkVisibilityDays = 14

	// RetentionDays is how long a record is kept past its ETA before the
	// sweeper removes it
	RetentionDays = 90

	// SyncBatchSize bounds the per-statement payload of bulk inserts
	// during a full-replace sync
	SyncBatchSize = 500

	// TrackingNumberMinLen is the minimum length for a term to classify
	// as a tracking-number search
	TrackingNumberMinLen = 6

	// StatusPendingLoading marks goods received but not yet loaded
	StatusPendingLoading = "Pending Loading"

	// StatusLoaded marks goods loaded into a container
	StatusLoaded = "Loaded"
)

// Search retry constants
const (
	// SearchMaxAttempts bounds retries on transient storage errors
	SearchMaxAttempts = 3

	// SearchRetryBaseDelay is the first backoff step; doubled per attempt
	SearchRetryBaseDelay = 100 * time.Millisecond
)
