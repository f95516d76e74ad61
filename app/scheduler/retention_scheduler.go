// Package scheduler
package scheduler

import (
	"context"
	"log"
	"time"

	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
)

// RetentionScheduler sweeps delivered shipments out of the dataset once their
// ETA has aged past the retention window
type RetentionScheduler struct {
	retentionFlow businessflow.RetentionFlow
	logger        *log.Logger
	interval      time.Duration
}

func NewRetentionScheduler(retentionFlow businessflow.RetentionFlow, logger *log.Logger, interval time.Duration) *RetentionScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if logger == nil {
		logger = log.Default()
	}

	return &RetentionScheduler{
		retentionFlow: retentionFlow,
		logger:        logger,
		interval:      interval,
	}
}

// Start launches the sweep loop and returns a stop function. One sweep runs
// immediately so restarts do not postpone cleanup by a full interval.
func (s *RetentionScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

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

func (s *RetentionScheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("scheduler: retention sweep panicked: %v", r)
		}
	}()

	result, err := s.retentionFlow.Cleanup(ctx)
	if err != nil {
		s.logger.Printf("scheduler: retention sweep failed: %v", err)
		return
	}

	if result.Deleted > 0 {
		s.logger.Printf("scheduler: retention sweep removed %d records", result.Deleted)
	}
}
