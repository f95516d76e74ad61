// Package sheet normalizes heterogeneous spreadsheet tracking data into the
// canonical record shape. Everything here is pure: no I/O, no panics, and
// unparseable date cells fall through as-is.
package sheet

import "strings"

// Record is the canonical field set a spreadsheet row maps onto. All
// fields are free-form strings; the three date fields are either "" or
// YYYY-MM-DD once they have passed through the Normalizer.
type Record struct {
	TrackingNumber string
	ShippingMark   string
	Quantity       string
	CBM            string
	DateReceived   string
	DateLoaded     string
	ETA            string
	Status         string
}

// HasIdentity reports whether the record carries at least one searchable
// identifier. Rows without identity are dropped during ingestion.
func (r Record) HasIdentity() bool {
	return strings.TrimSpace(r.TrackingNumber) != "" || strings.TrimSpace(r.ShippingMark) != ""
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
