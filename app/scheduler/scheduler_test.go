package scheduler

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
)

type fakeSyncFlow struct {
	calls int64
	err   error
}

func (f *fakeSyncFlow) SyncNow(ctx context.Context) (*dto.SyncResponse, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SyncResponse{RecordsSynced: 3}, nil
}

func (f *fakeSyncFlow) Status(ctx context.Context) (*dto.SyncStatusResponse, error) {
	return &dto.SyncStatusResponse{}, nil
}

type fakeRetentionFlow struct {
	calls int64
}

func (f *fakeRetentionFlow) Cleanup(ctx context.Context) (*dto.CleanupResponse, error) {
	atomic.AddInt64(&f.calls, 1)
	return &dto.CleanupResponse{Deleted: 2}, nil
}

func TestSheetSyncSchedulerRunsAndStops(t *testing.T) {
	flow := &fakeSyncFlow{}
	s := NewSheetSyncScheduler(flow, log.New(testWriter{t}, "", 0), 10*time.Millisecond, 0)

	stop := s.Start(context.Background())

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&flow.calls) >= 2
	}, time.Second, 5*time.Millisecond)

	stop()
	settled := atomic.LoadInt64(&flow.calls)
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, atomic.LoadInt64(&flow.calls), settled+1)
}

func TestSheetSyncSchedulerHonorsInitialDelay(t *testing.T) {
	flow := &fakeSyncFlow{}
	s := NewSheetSyncScheduler(flow, log.New(testWriter{t}, "", 0), time.Hour, time.Hour)

	stop := s.Start(context.Background())
	defer stop()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt64(&flow.calls))
}

func TestSheetSyncSchedulerToleratesFailures(t *testing.T) {
	flow := &fakeSyncFlow{err: errors.New("sheet source unreachable")}
	s := NewSheetSyncScheduler(flow, log.New(testWriter{t}, "", 0), 10*time.Millisecond, 0)

	stop := s.Start(context.Background())
	defer stop()

	// loop keeps ticking despite every run failing
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&flow.calls) >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestSheetSyncSchedulerSkipsWhenNotConfigured(t *testing.T) {
	flow := &fakeSyncFlow{err: businessflow.NewBusinessError("SYNC_NOT_CONFIGURED", "Sheet sync is not configured", businessflow.ErrSyncNotConfigured)}
	s := NewSheetSyncScheduler(flow, log.New(testWriter{t}, "", 0), 10*time.Millisecond, 0)

	stop := s.Start(context.Background())
	defer stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&flow.calls) >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestRetentionSchedulerSweepsImmediately(t *testing.T) {
	flow := &fakeRetentionFlow{}
	s := NewRetentionScheduler(flow, log.New(testWriter{t}, "", 0), time.Hour)

	stop := s.Start(context.Background())
	defer stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&flow.calls) >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestRetentionSchedulerStops(t *testing.T) {
	flow := &fakeRetentionFlow{}
	s := NewRetentionScheduler(flow, log.New(testWriter{t}, "", 0), 10*time.Millisecond)

	stop := s.Start(context.Background())

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&flow.calls) >= 2
	}, time.Second, 5*time.Millisecond)

	stop()
	settled := atomic.LoadInt64(&flow.calls)
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, atomic.LoadInt64(&flow.calls), settled+1)
}

// testWriter routes scheduler log output through the test log
type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
