// Package businessflow contains the core business logic and use cases for cargo tracking workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Authentication errors
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrSessionExpired    = errors.New("session expired")

	// Search errors
	ErrSearchTermRequired = errors.New("search term is required")
	ErrSearchUnavailable  = errors.New("search is temporarily unavailable")
	ErrSearchTermTooLong  = errors.New("search term is too long")
	ErrTooManySearchTerms = errors.New("too many search terms in one request")

	// Tracking data errors
	ErrNoTrackingRows        = errors.New("no tracking rows supplied")
	ErrNoRecordIDs           = errors.New("no record IDs supplied")
	ErrSpreadsheetUnreadable = errors.New("spreadsheet file could not be read")
	ErrSpreadsheetEmpty      = errors.New("spreadsheet contains no data rows")
	ErrSyncSourceEmpty       = errors.New("sync source returned no usable rows")
	ErrSyncNotConfigured     = errors.New("sheet sync is not configured")
	ErrSyncAlreadyRunning    = errors.New("a sync is already in progress")

	// Vessel errors
	ErrVesselNotFound     = errors.New("vessel not found")
	ErrVesselNameRequired = errors.New("vessel name is required")

	// Pagination errors
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = errors.New("page size is out of range")

	// Analytics errors
	ErrInvalidDateRange = errors.New("invalid date range")
)

// BusinessError represents a business logic error with context
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

func IsSearchTermRequired(err error) bool {
	return errors.Is(err, ErrSearchTermRequired)
}

func IsSearchUnavailable(err error) bool {
	return errors.Is(err, ErrSearchUnavailable)
}

func IsSearchTermTooLong(err error) bool {
	return errors.Is(err, ErrSearchTermTooLong)
}

func IsTooManySearchTerms(err error) bool {
	return errors.Is(err, ErrTooManySearchTerms)
}

func IsNoTrackingRows(err error) bool {
	return errors.Is(err, ErrNoTrackingRows)
}

func IsNoRecordIDs(err error) bool {
	return errors.Is(err, ErrNoRecordIDs)
}

func IsSpreadsheetUnreadable(err error) bool {
	return errors.Is(err, ErrSpreadsheetUnreadable)
}

func IsSpreadsheetEmpty(err error) bool {
	return errors.Is(err, ErrSpreadsheetEmpty)
}

func IsSyncSourceEmpty(err error) bool {
	return errors.Is(err, ErrSyncSourceEmpty)
}

func IsSyncNotConfigured(err error) bool {
	return errors.Is(err, ErrSyncNotConfigured)
}

func IsSyncAlreadyRunning(err error) bool {
	return errors.Is(err, ErrSyncAlreadyRunning)
}

func IsVesselNotFound(err error) bool {
	return errors.Is(err, ErrVesselNotFound)
}

func IsVesselNameRequired(err error) bool {
	return errors.Is(err, ErrVesselNameRequired)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsInvalidDateRange(err error) bool {
	return errors.Is(err, ErrInvalidDateRange)
}
