// Package businessflow contains the core business logic and use cases for cargo tracking workflows
package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/repository"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
)

// RetentionFlow removes tracking records long past their arrival date
type RetentionFlow interface {
	Cleanup(ctx context.Context) (*dto.CleanupResponse, error)
}

// RetentionFlowImpl implements the retention sweep business flow
type RetentionFlowImpl struct {
	trackingRepo  repository.TrackingRecordRepository
	retentionDays int
	now           func() time.Time
}

// NewRetentionFlow creates a new retention flow instance
func NewRetentionFlow(trackingRepo repository.TrackingRecordRepository, retentionDays int, now func() time.Time) RetentionFlow {
	if retentionDays <= 0 {
		retentionDays = utils.RetentionDays
	}
	if now == nil {
		now = utils.UTCNow
	}
	return &RetentionFlowImpl{
		trackingRepo:  trackingRepo,
		retentionDays: retentionDays,
		now:           now,
	}
}

// Cleanup deletes records whose ETA is more than the retention window in the
// past. Records with a blank ETA or a pending status survive regardless of
// age; the repository enforces both exclusions.
func (f *RetentionFlowImpl) Cleanup(ctx context.Context) (*dto.CleanupResponse, error) {
	cutoff := f.now().AddDate(0, 0, -f.retentionDays).Format(utils.DateLayout)

	deleted, err := f.trackingRepo.DeleteExpired(ctx, cutoff)
	if err != nil {
		return nil, NewBusinessError("CLEANUP_FAILED", "Failed to sweep expired tracking records", err)
	}

	return &dto.CleanupResponse{
		Deleted: deleted,
		Message: fmt.Sprintf("Removed %d record(s) with ETA before %s", deleted, cutoff),
	}, nil
}
