package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveETA(t *testing.T) {
	tests := []struct {
		name       string
		dateLoaded string
		explicit   string
		want       string
	}{
		{"explicit wins", "2025-01-01", "2025-02-01", "2025-02-01"},
		{"derived from loading", "2025-01-01", "", "2025-02-15"},
		{"derived across year boundary", "2024-12-01", "", "2025-01-15"},
		{"no loading no eta", "", "", ""},
		{"unparseable loading date", "soon", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveETA(tt.dateLoaded, tt.explicit))
		})
	}
}

func TestNormalizeRow(t *testing.T) {
	n := NewNormalizer(fixedClock)

	t.Run("loaded source derives eta and normalizes dates", func(t *testing.T) {
		rec, ok := NormalizeRow(n, Record{
			TrackingNumber: "GH2024001234",
			ShippingMark:   "SMITH",
			DateReceived:   "2024/12/20",
			DateLoaded:     "2025-01-01",
		}, NormalizeOptions{})

		assert.True(t, ok)
		assert.Equal(t, "2024-12-20", rec.DateReceived)
		assert.Equal(t, "2025-02-15", rec.ETA)
	})

	t.Run("pending source skips eta and applies default status", func(t *testing.T) {
		rec, ok := NormalizeRow(n, Record{
			ShippingMark: "KOFI",
			DateReceived: "45000",
		}, NormalizeOptions{DefaultStatus: "Pending Loading", SkipETADerivation: true})

		assert.True(t, ok)
		assert.Equal(t, "2023-03-15", rec.DateReceived)
		assert.Empty(t, rec.ETA)
		assert.Equal(t, "Pending Loading", rec.Status)
	})

	t.Run("row without identity is dropped", func(t *testing.T) {
		_, ok := NormalizeRow(n, Record{Quantity: "3"}, NormalizeOptions{})
		assert.False(t, ok)
	})

	t.Run("existing status is not overwritten", func(t *testing.T) {
		rec, ok := NormalizeRow(n, Record{ShippingMark: "AMA", Status: "Loaded"},
			NormalizeOptions{DefaultStatus: "Pending Loading"})

		assert.True(t, ok)
		assert.Equal(t, "Loaded", rec.Status)
	})
}
