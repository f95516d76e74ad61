package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Excel serial date conversion constants. Day 0 of the serial calendar is
// 1899-12-30, which absorbs the historical 1900 leap-year bug: serial 45000
// lands on 2023-03-15. Serials outside (1, 100000) are not treated as
// dates at all, and a converted date outside the year guard band is
// rejected so plain integers (a quantity, a container count) never get
// misread as dates.
const (
	excelSerialMin = 1
	excelSerialMax = 100000

	minPlausibleYear = 1990
	maxPlausibleYear = 2100
)

var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	isoDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDateRe  = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	ordinalSufRe = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
)

// Normalizer converts raw spreadsheet cells into canonical YYYY-MM-DD
// strings. The zero value is not usable; construct with NewNormalizer.
// The clock only matters for day-month date strings that omit a year.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer returns a Normalizer using the given clock, or time.Now
// (UTC) when nil.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Normalizer{now: now}
}

// NormalizeDate maps a raw cell value to a canonical YYYY-MM-DD string.
// The attempts run in a fixed order and the function is total: it never
// returns an error, and a value it cannot interpret comes back trimmed but
// otherwise unchanged. Normalizing an already-normalized date is a no-op.
func (n *Normalizer) NormalizeDate(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	// Fast path: already canonical.
	if isoDateRe.MatchString(value) {
		return value
	}

	// Sheets display format YYYY/M/D: reformat with zero padding.
	if m := slashDateRe.FindStringSubmatch(value); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := buildDate(year, month, day); ok {
			return d
		}
		return value
	}

	// Excel/Sheets date serial.
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if d, ok := fromExcelSerial(serial); ok {
			return d
		}
		// Numeric but not a plausible serial: leave it alone.
		return value
	}

	// Generic date strings, e.g. "02 Jan 2024" or "4th April".
	if d, ok := n.parseLoose(value); ok {
		return d
	}

	return value
}

// FromExcelSerial converts an Excel date serial to YYYY-MM-DD, reporting
// false when the serial or the resulting year is out of range.
func FromExcelSerial(serial float64) (string, bool) {
	return fromExcelSerial(serial)
}

func fromExcelSerial(serial float64) (string, bool) {
	if serial <= excelSerialMin || serial >= excelSerialMax {
		return "", false
	}
	d := excelEpoch.AddDate(0, 0, int(serial))
	if d.Year() < minPlausibleYear || d.Year() > maxPlausibleYear {
		return "", false
	}
	return d.Format("2006-01-02"), true
}

// looseLayouts are tried in order against generic date strings. Layouts
// without a year resolve against the normalizer's clock.
var looseLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-1-2",
	"02-01-2006",
}

var looseLayoutsNoYear = []string{
	"2 January",
	"2 Jan",
	"January 2",
	"Jan 2",
}

func (n *Normalizer) parseLoose(value string) (string, bool) {
	cleaned := ordinalSufRe.ReplaceAllString(value, "$1")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	for _, layout := range looseLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			if t.Year() >= minPlausibleYear && t.Year() <= maxPlausibleYear {
				return t.Format("2006-01-02"), true
			}
		}
	}

	for _, layout := range looseLayoutsNoYear {
		if t, err := time.Parse(layout, cleaned); err == nil {
			year := n.now().Year()
			if d, ok := buildDate(year, int(t.Month()), t.Day()); ok {
				return d, true
			}
		}
	}

	return "", false
}

func buildDate(year, month, day int) (string, bool) {
	if year < minPlausibleYear || year > maxPlausibleYear {
		return "", false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// IsCanonicalDate reports whether s is a canonical YYYY-MM-DD string that
// parses to a real calendar date.
func IsCanonicalDate(s string) bool {
	if !isoDateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
