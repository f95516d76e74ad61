package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/edzeame-del/ghana-cargo-logistics/config"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// primarySheetRows mirrors the production sheet layout: A=mark, B=received,
// C=loaded, E=cartons, G=CBM, H=tracking number, I=ETA.
func primarySheetRows() [][]string {
	return [][]string{
		{"唛头 MARK", "收货日期", "装柜日期", "", "件数", "", "体积", "快递单号", "预计到达"},
		{"KWAME", "2025/6/1", "2025/6/5", "", "3", "", "0.75", "SF123456", ""},
		{"AMA-ACCRA", "2025/6/2", "2025/6/5", "", "1", "", "0.20", "YT987654", "2025-07-18"},
		{"", "", "", "", "", "", "", "", ""},
	}
}

// pendingSheetRows mirrors the pending sheet layout: A=mark, B=received,
// D=cartons, F=CBM, G=tracking number.
func pendingSheetRows() [][]string {
	return [][]string{
		{"MARK", "RECEIVED", "", "QTY", "", "CBM", "TRACKING"},
		{"KOFI", "2025/6/10", "", "2", "", "0.40", "JD555666"},
	}
}

func syncConfig(pendingID string) config.SheetsConfig {
	return config.SheetsConfig{
		APIKey:               "test-key",
		SpreadsheetID:        "primary-sheet",
		SheetRange:           "A:Z",
		PendingSpreadsheetID: pendingID,
		PendingSheetRange:    "A:Z",
	}
}

func TestSyncNowReplacesDataset(t *testing.T) {
	trackingRepo := &fakeTrackingRepo{}
	sheets := &fakeSheetsAPI{rows: map[string][][]string{
		"primary-sheet": primarySheetRows(),
		"pending-sheet": pendingSheetRows(),
	}}

	flow := NewTrackingSyncFlow(trackingRepo, sheets, syncConfig("pending-sheet"), fixedNow)

	resp, err := flow.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.RecordsSynced)

	require.Len(t, trackingRepo.replaceAllCalls, 1)
	records := trackingRepo.replaceAllCalls[0]
	require.Len(t, records, 3)

	// Primary rows get the loaded status and a derived ETA of loading + 45 days
	assert.Equal(t, "KWAME", records[0].ShippingMark)
	assert.Equal(t, "SF123456", records[0].TrackingNumber)
	assert.Equal(t, "2025-06-01", records[0].DateReceived)
	assert.Equal(t, "2025-06-05", records[0].DateLoaded)
	assert.Equal(t, "2025-07-20", records[0].ETA)
	assert.Equal(t, utils.StatusLoaded, records[0].Status)

	// An explicit ETA wins over derivation
	assert.Equal(t, "2025-07-18", records[1].ETA)

	// Pending rows carry the pending status and no ETA
	assert.Equal(t, "KOFI", records[2].ShippingMark)
	assert.Equal(t, utils.StatusPendingLoading, records[2].Status)
	assert.Equal(t, "", records[2].ETA)
	assert.Equal(t, "", records[2].DateLoaded)
}

func TestSyncNowPendingFailureIsNotFatal(t *testing.T) {
	trackingRepo := &fakeTrackingRepo{}
	sheets := &fakeSheetsAPI{
		rows: map[string][][]string{"primary-sheet": primarySheetRows()},
		errs: map[string]error{"pending-sheet": errors.New("http 500")},
	}

	flow := NewTrackingSyncFlow(trackingRepo, sheets, syncConfig("pending-sheet"), fixedNow)

	resp, err := flow.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.RecordsSynced)
}

func TestSyncNowEmptySourceDoesNotWipeDataset(t *testing.T) {
	trackingRepo := &fakeTrackingRepo{}
	sheets := &fakeSheetsAPI{rows: map[string][][]string{
		"primary-sheet": {{"MARK", "RECEIVED", "LOADED"}},
	}}

	flow := NewTrackingSyncFlow(trackingRepo, sheets, syncConfig(""), fixedNow)

	_, err := flow.SyncNow(context.Background())
	require.Error(t, err)
	assert.True(t, IsSyncSourceEmpty(err))
	assert.Empty(t, trackingRepo.replaceAllCalls)
}

func TestSyncNowPrimaryFetchFailure(t *testing.T) {
	trackingRepo := &fakeTrackingRepo{}
	sheets := &fakeSheetsAPI{errs: map[string]error{"primary-sheet": errors.New("http 403")}}

	flow := NewTrackingSyncFlow(trackingRepo, sheets, syncConfig(""), fixedNow)

	_, err := flow.SyncNow(context.Background())
	require.Error(t, err)
	assert.Empty(t, trackingRepo.replaceAllCalls)
}

func TestSyncNowNotConfigured(t *testing.T) {
	flow := NewTrackingSyncFlow(&fakeTrackingRepo{}, &fakeSheetsAPI{}, config.SheetsConfig{}, fixedNow)

	_, err := flow.SyncNow(context.Background())
	assert.True(t, IsSyncNotConfigured(err))
}

func TestSyncStatus(t *testing.T) {
	trackingRepo := &fakeTrackingRepo{}
	sheets := &fakeSheetsAPI{rows: map[string][][]string{
		"primary-sheet": primarySheetRows(),
	}}

	flow := NewTrackingSyncFlow(trackingRepo, sheets, syncConfig(""), fixedNow)

	status, err := flow.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Configured)
	assert.False(t, status.Running)
	assert.Empty(t, status.LastRunAt)

	_, err = flow.SyncNow(context.Background())
	require.NoError(t, err)

	status, err = flow.Status(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, status.LastRunAt)
	assert.NotEmpty(t, status.LastSuccessAt)
	assert.Equal(t, 2, status.LastCount)
	assert.Equal(t, int64(2), status.TotalRecords)
	assert.Empty(t, status.LastError)
}
