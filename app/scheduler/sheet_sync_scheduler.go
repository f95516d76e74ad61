// Package scheduler
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/middleware"
	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
)

// SheetSyncScheduler periodically refreshes the tracking dataset from the
// configured spreadsheet sources
type SheetSyncScheduler struct {
	syncFlow     businessflow.TrackingSyncFlow
	logger       *log.Logger
	interval     time.Duration
	initialDelay time.Duration
}

func NewSheetSyncScheduler(syncFlow businessflow.TrackingSyncFlow, logger *log.Logger, interval, initialDelay time.Duration) *SheetSyncScheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if initialDelay < 0 {
		initialDelay = 0
	}
	if logger == nil {
		logger = log.Default()
	}

	return &SheetSyncScheduler{
		syncFlow:     syncFlow,
		logger:       logger,
		interval:     interval,
		initialDelay: initialDelay,
	}
}

// Start launches the sync loop and returns a stop function. The first run
// waits for the initial delay so the server can finish coming up.
func (s *SheetSyncScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.initialDelay):
		}

		s.runOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *SheetSyncScheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("scheduler: sheet sync panicked: %v", r)
		}
	}()

	result, err := s.syncFlow.SyncNow(ctx)
	if err != nil {
		if businessflow.IsSyncNotConfigured(err) {
			// Nothing to do until credentials are provided
			return
		}
		if businessflow.IsSyncAlreadyRunning(err) {
			s.logger.Printf("scheduler: sheet sync skipped, previous run still in progress")
			return
		}

		middleware.RecordSyncRun(err, 0)
		s.logger.Printf("scheduler: sheet sync failed: %v", err)
		return
	}

	middleware.RecordSyncRun(nil, result.RecordsSynced)
	s.logger.Printf("scheduler: sheet sync replaced %d records", result.RecordsSynced)
}
