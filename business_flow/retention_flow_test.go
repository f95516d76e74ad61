package businessflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupUsesRetentionCutoff(t *testing.T) {
	trackingRepo := &fakeTrackingRepo{deleteExpiredCount: 7}
	flow := NewRetentionFlow(trackingRepo, 90, fixedNow)

	result, err := flow.Cleanup(context.Background())
	require.NoError(t, err)

	// 2025-06-15 minus 90 days
	assert.Equal(t, []string{"2025-03-17"}, trackingRepo.deleteExpiredCutoffs)
	assert.Equal(t, int64(7), result.Deleted)
	assert.Equal(t, "Removed 7 record(s) with ETA before 2025-03-17", result.Message)
}

func TestCleanupDefaultsRetentionWindow(t *testing.T) {
	trackingRepo := &fakeTrackingRepo{}
	flow := NewRetentionFlow(trackingRepo, 0, fixedNow)

	_, err := flow.Cleanup(context.Background())
	require.NoError(t, err)

	require.Len(t, trackingRepo.deleteExpiredCutoffs, 1)
	assert.Equal(t, "2025-03-17", trackingRepo.deleteExpiredCutoffs[0])
}

func TestCleanupReportsZeroDeletions(t *testing.T) {
	trackingRepo := &fakeTrackingRepo{}
	flow := NewRetentionFlow(trackingRepo, 90, fixedNow)

	result, err := flow.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Deleted)
}
