package sheet

import "strings"

// MappingStrategy maps one data row, aligned to a header row, onto the
// canonical Record. The two variants reflect the two real-world header
// layouts the system tolerates: fuzzy synonym matching for arbitrary
// uploads, and fixed column positions for the production Sheet whose
// header text is bilingual and inconsistent.
type MappingStrategy interface {
	MapRow(row []string) Record
}

// fieldSynonyms maps each canonical field to the header spellings seen in
// the wild, normalized to lowercase alphanumerics. Chinese headers come
// from the supplier-side sheets; a few entries are observed typos, not
// ours to fix.
var fieldSynonyms = map[string][]string{
	"trackingNumber": {
		"trackingnumber", "tracking", "track", "number", "trackingno", "trackno",
		"supplier", "suppliertrackingno",
		"跟踪号", "追踪号", "快递单号",
	},
	"shippingMark": {
		"shippingmark", "mark", "marks", "reference", "ref", "client",
		"shippinmark",
		"唛头", "客户名",
	},
	"quantity": {
		"quantity", "qty", "pieces", "pcs", "count", "amount", "ctns",
		"件数", "数量",
	},
	"cbm": {
		"cbm", "cubicmeter", "cubic", "volume", "m3",
		"体积", "立方",
	},
	"dateReceived": {
		"received", "datereceived", "receiveddate", "receiptdate", "dateofreceipt", "receipt",
		"收货日期", "送货日期",
	},
	"dateLoaded": {
		"loaded", "dateloaded", "loadeddate", "loadingdate", "dateofloading", "loading",
		"装柜日期", "装载日期",
	},
	"eta": {
		"eta", "estimatedarrival", "arrivaldate", "expectedarrival", "deliverydate",
		"预计到达", "到货日期",
	},
	"status": {
		"status", "state", "condition", "stage",
		"状态", "情况",
	},
}

// normalizeHeader lowercases a raw header and strips everything that is
// not a letter, digit, or CJK character, so "Tracking No.", "tracking_no"
// and "TRACKING NO" all collapse to the same key.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// columnIndexes holds the resolved column position per canonical field;
// -1 means the field has no source column.
type columnIndexes struct {
	trackingNumber int
	shippingMark   int
	quantity       int
	cbm            int
	dateReceived   int
	dateLoaded     int
	eta            int
	status         int
}

// FuzzyHeaderMapping resolves columns by synonym-matching the header row.
// The first header matching a field's synonym list wins; unmatched fields
// stay empty in every mapped record.
type FuzzyHeaderMapping struct {
	idx columnIndexes
}

// NewFuzzyHeaderMapping builds a mapping from the given raw header row.
func NewFuzzyHeaderMapping(headers []string) *FuzzyHeaderMapping {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	find := func(field string) int {
		for i, header := range normalized {
			if header == "" {
				continue
			}
			for _, syn := range fieldSynonyms[field] {
				if strings.Contains(header, syn) || strings.Contains(syn, header) {
					return i
				}
			}
		}
		return -1
	}

	return &FuzzyHeaderMapping{idx: columnIndexes{
		trackingNumber: find("trackingNumber"),
		shippingMark:   find("shippingMark"),
		quantity:       find("quantity"),
		cbm:            find("cbm"),
		dateReceived:   find("dateReceived"),
		dateLoaded:     find("dateLoaded"),
		eta:            find("eta"),
		status:         find("status"),
	}}
}

// MapRow maps a data row using the resolved header positions.
func (m *FuzzyHeaderMapping) MapRow(row []string) Record {
	return mapByIndexes(m.idx, row)
}

// FixedPositionMapping maps by column index directly, ignoring header
// text. Brittle by design: it exists for the production Sheet whose merged
// bilingual headers defeat name matching but whose column order is stable.
type FixedPositionMapping struct {
	idx columnIndexes
}

// ProductionSheetMapping returns the fixed layout of the primary tracking
// Sheet: A=shipping mark, B=date received, C=date loaded, E=cartons,
// G=CBM, H=supplier tracking number, I=ETA. There is no status column.
func ProductionSheetMapping() *FixedPositionMapping {
	return &FixedPositionMapping{idx: columnIndexes{
		shippingMark:   0,
		dateReceived:   1,
		dateLoaded:     2,
		quantity:       4,
		cbm:            6,
		trackingNumber: 7,
		eta:            8,
		status:         -1,
	}}
}

// PendingSheetMapping returns the layout of the secondary "pending goods"
// Sheet: goods received at the warehouse but not yet loaded, so it has no
// loading, ETA, or status columns.
func PendingSheetMapping() *FixedPositionMapping {
	return &FixedPositionMapping{idx: columnIndexes{
		shippingMark:   0,
		dateReceived:   1,
		dateLoaded:     -1,
		quantity:       3,
		cbm:            5,
		trackingNumber: 6,
		eta:            -1,
		status:         -1,
	}}
}

// MapRow maps a data row by fixed positions.
func (m *FixedPositionMapping) MapRow(row []string) Record {
	return mapByIndexes(m.idx, row)
}

func mapByIndexes(idx columnIndexes, row []string) Record {
	return Record{
		TrackingNumber: cellAt(row, idx.trackingNumber),
		ShippingMark:   cellAt(row, idx.shippingMark),
		Quantity:       cellAt(row, idx.quantity),
		CBM:            cellAt(row, idx.cbm),
		DateReceived:   cellAt(row, idx.dateReceived),
		DateLoaded:     cellAt(row, idx.dateLoaded),
		ETA:            cellAt(row, idx.eta),
		Status:         cellAt(row, idx.status),
	}
}
