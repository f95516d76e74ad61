package sheet

import "time"

// transitDays is the assumed sea transit time from loading to arrival.
const transitDays = 45

// DeriveETA resolves the final ETA for a record. An explicit non-empty ETA
// wins verbatim; otherwise a loading date yields loading + 45 calendar
// days; otherwise "". Goods that have not been loaded get no ETA.
func DeriveETA(dateLoaded, explicitETA string) string {
	if explicitETA != "" {
		return explicitETA
	}
	if dateLoaded == "" {
		return ""
	}
	loaded, err := time.Parse("2006-01-02", dateLoaded)
	if err != nil {
		return ""
	}
	return loaded.AddDate(0, 0, transitDays).Format("2006-01-02")
}

// NormalizeOptions tweaks NormalizeRow per source.
type NormalizeOptions struct {
	// DefaultStatus fills the status field when the source has no status
	// column, e.g. "Pending Loading" for the secondary sheet.
	DefaultStatus string

	// SkipETADerivation leaves ETA untouched instead of deriving it from
	// the loading date. Set for pending-goods sources.
	SkipETADerivation bool
}

// NormalizeRow runs a mapped record through date normalization and ETA
// derivation. It returns false when the record has no identity and should
// be dropped.
func NormalizeRow(n *Normalizer, rec Record, opts NormalizeOptions) (Record, bool) {
	if !rec.HasIdentity() {
		return Record{}, false
	}

	rec.DateReceived = n.NormalizeDate(rec.DateReceived)
	rec.DateLoaded = n.NormalizeDate(rec.DateLoaded)
	rec.ETA = n.NormalizeDate(rec.ETA)

	if !opts.SkipETADerivation {
		rec.ETA = DeriveETA(rec.DateLoaded, rec.ETA)
	}
	if rec.Status == "" && opts.DefaultStatus != "" {
		rec.Status = opts.DefaultStatus
	}
	return rec, true
}
