package report

import (
	"strings"

	"agritrack/backend/internal/records"
)

// Filters restricts the record set a report is built from. Every dimension
// is optional; the zero value means no restriction.
type Filters struct {
	Barangay string
	Month    int    // 1-12, 0 = all
	Year     int    // 0 = all
	AreaType string // "irrigated" | "rainfed"
	CropType string
}

// matches reports whether a raw record passes the barangay and date
// dimensions. When a month or year filter is active, records without a
// resolvable date are excluded, consistent with the resolver's date policy.
func (f Filters) matches(rec records.RawRecord) bool {
	if f.Barangay != "" {
		if !strings.EqualFold(records.ResolveString(rec, records.BarangayKeys...), f.Barangay) {
			return false
		}
	}
	if f.Month != 0 || f.Year != 0 {
		date, ok := records.ResolveDate(rec, records.DateKeys...)
		if !ok {
			return false
		}
		if f.Month != 0 && int(date.Month()) != f.Month {
			return false
		}
		if f.Year != 0 && date.Year() != f.Year {
			return false
		}
	}
	return true
}

// filterRecords applies the shared dimensions to a record slice.
func filterRecords(recs []records.RawRecord, f Filters) []records.RawRecord {
	out := make([]records.RawRecord, 0, len(recs))
	for _, rec := range recs {
		if f.matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}
