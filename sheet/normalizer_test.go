package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func TestNormalizeDate(t *testing.T) {
	n := NewNormalizer(fixedClock)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canonical is idempotent", "2024-03-07", "2024-03-07"},
		{"canonical with whitespace", "  2024-03-07 ", "2024-03-07"},
		{"sheets slash format", "2024/3/7", "2024-03-07"},
		{"sheets slash format padded", "2024/12/25", "2024-12-25"},
		{"excel serial", "45000", "2023-03-15"},
		{"excel serial float", "45000.5", "2023-03-15"},
		{"small integer is not a date", "12", "12"},
		{"quantity-sized integer is not a date", "500", "500"},
		{"huge integer is not a date", "2024001234", "2024001234"},
		{"day month year", "7 Mar 2024", "2024-03-07"},
		{"long month", "7 March 2024", "2024-03-07"},
		{"ordinal day no year", "4th April", "2025-04-04"},
		{"ordinal day no year reversed", "April 4th", "2025-04-04"},
		{"implausible year rejected", "7 Mar 1850", "7 Mar 1850"},
		{"garbage passes through trimmed", "  pending  ", "pending"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.NormalizeDate(tt.in))
		})
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	n := NewNormalizer(fixedClock)

	inputs := []string{"2024/3/7", "45000", "4th April", "pending", ""}
	for _, in := range inputs {
		once := n.NormalizeDate(in)
		assert.Equal(t, once, n.NormalizeDate(once), "normalizing %q twice diverged", in)
	}
}

func TestFromExcelSerial(t *testing.T) {
	got, ok := FromExcelSerial(45000)
	assert.True(t, ok)
	assert.Equal(t, "2023-03-15", got)

	// Round-trip against the epoch constant: 2023-03-15 is 45000 days
	// after 1899-12-30.
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	want := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 45000, int(want.Sub(epoch).Hours()/24))

	_, ok = FromExcelSerial(1)
	assert.False(t, ok)
	_, ok = FromExcelSerial(100000)
	assert.False(t, ok)
	// Serial 400 is valid in Excel (year 1901) but outside the plausible
	// year band for cargo data.
	_, ok = FromExcelSerial(400)
	assert.False(t, ok)
}

func TestIsCanonicalDate(t *testing.T) {
	assert.True(t, IsCanonicalDate("2024-02-29"))
	assert.False(t, IsCanonicalDate("2023-02-29"))
	assert.False(t, IsCanonicalDate(""))
	assert.False(t, IsCanonicalDate("2024/03/07"))
	assert.False(t, IsCanonicalDate("pending"))
}
