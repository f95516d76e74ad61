package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyHeaderMapping(t *testing.T) {
	t.Run("english headers with punctuation and case", func(t *testing.T) {
		m := NewFuzzyHeaderMapping([]string{
			"Shipping Mark", "Date Received", "Date Loaded", "QTY", "CBM", "Tracking No.", "ETA", "Status",
		})
		rec := m.MapRow([]string{"SMITH", "2024-01-01", "2024-01-10", "5", "1.2", "GH2024001234", "2024-02-20", "Loaded"})

		assert.Equal(t, "SMITH", rec.ShippingMark)
		assert.Equal(t, "2024-01-01", rec.DateReceived)
		assert.Equal(t, "2024-01-10", rec.DateLoaded)
		assert.Equal(t, "5", rec.Quantity)
		assert.Equal(t, "1.2", rec.CBM)
		assert.Equal(t, "GH2024001234", rec.TrackingNumber)
		assert.Equal(t, "2024-02-20", rec.ETA)
		assert.Equal(t, "Loaded", rec.Status)
	})

	t.Run("chinese headers", func(t *testing.T) {
		m := NewFuzzyHeaderMapping([]string{"唛头", "收货日期", "装柜日期", "件数", "体积", "快递单号"})
		rec := m.MapRow([]string{"KOFI", "2024-05-01", "2024-05-08", "10", "2.4", "SF123456789"})

		assert.Equal(t, "KOFI", rec.ShippingMark)
		assert.Equal(t, "2024-05-01", rec.DateReceived)
		assert.Equal(t, "2024-05-08", rec.DateLoaded)
		assert.Equal(t, "10", rec.Quantity)
		assert.Equal(t, "2.4", rec.CBM)
		assert.Equal(t, "SF123456789", rec.TrackingNumber)
		assert.Empty(t, rec.ETA)
		assert.Empty(t, rec.Status)
	})

	t.Run("reordered columns", func(t *testing.T) {
		m := NewFuzzyHeaderMapping([]string{"tracking number", "shipping mark"})
		rec := m.MapRow([]string{"GH000111222", "AMA"})

		assert.Equal(t, "GH000111222", rec.TrackingNumber)
		assert.Equal(t, "AMA", rec.ShippingMark)
	})

	t.Run("unmatched fields default to empty", func(t *testing.T) {
		m := NewFuzzyHeaderMapping([]string{"shipping mark"})
		rec := m.MapRow([]string{"YAW"})

		assert.Equal(t, "YAW", rec.ShippingMark)
		assert.Empty(t, rec.TrackingNumber)
		assert.Empty(t, rec.Quantity)
	})
}

func TestProductionSheetMapping(t *testing.T) {
	m := ProductionSheetMapping()

	// A  B           C           D    E  F  G    H            I
	row := []string{"ADWOA", "2024-06-01", "2024-06-10", "x", "8", "x", "3.1", "YT7000111222", "2024-07-25"}
	rec := m.MapRow(row)

	assert.Equal(t, "ADWOA", rec.ShippingMark)
	assert.Equal(t, "2024-06-01", rec.DateReceived)
	assert.Equal(t, "2024-06-10", rec.DateLoaded)
	assert.Equal(t, "8", rec.Quantity)
	assert.Equal(t, "3.1", rec.CBM)
	assert.Equal(t, "YT7000111222", rec.TrackingNumber)
	assert.Equal(t, "2024-07-25", rec.ETA)
	assert.Empty(t, rec.Status)
}

func TestMapRowShortRow(t *testing.T) {
	m := ProductionSheetMapping()
	rec := m.MapRow([]string{"ESI", "2024-06-01"})

	assert.Equal(t, "ESI", rec.ShippingMark)
	assert.Equal(t, "2024-06-01", rec.DateReceived)
	assert.Empty(t, rec.TrackingNumber)
	assert.Empty(t, rec.ETA)
}

func TestRecordHasIdentity(t *testing.T) {
	assert.True(t, Record{TrackingNumber: "GH1"}.HasIdentity())
	assert.True(t, Record{ShippingMark: "SMITH"}.HasIdentity())
	assert.False(t, Record{Quantity: "5", CBM: "1.0"}.HasIdentity())
	assert.False(t, Record{TrackingNumber: "  "}.HasIdentity())
}
