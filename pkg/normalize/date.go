package normalize

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate accepts the handful of date shapes state regulatory feeds
// actually use — YYYYMMDD, MM/DD/YYYY, YYYY-MM-DD, YYYYMM — and returns
// nil on anything else, including the "0" and "00000000" sentinels
// sources use for missing dates. It never panics or returns an error:
// a bad date is a null date, not an abort.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" || s == "0" || s == "00000000" || s == "000000" {
		return nil
	}

	layouts := []string{"20060102", "01/02/2006", "2006-01-02", "200601"}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		if t.Year() < 1859 { // first U.S. oil well; anything earlier is bad data
			continue
		}
		return &t
	}
	return nil
}

// MonthStart normalizes any timestamp to the first day of its month at
// midnight UTC, per the ProductionRecord invariant that month is always
// the 1st.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ParseIntSafe parses an integer field, used by fixed-width and CSV
// parsers across pkg/source; it never errors, returning nil for
// anything non-numeric or blank so callers can skip rather than abort.
func ParseIntSafe(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ParseFloatSafe parses a numeric field, returning nil rather than an
// error on anything unparseable or blank — a bad volume field is a null
// volume, never an abort.
func ParseFloatSafe(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseFloatSafeOrZero is ParseFloatSafe for required-but-sometimes-
// blank numeric fields (coordinates), where the caller's zero value
// already has a defined meaning — e.g. (0,0) as "unknown" for Asset
// lat/lon — rather than a separate null state.
func ParseFloatSafeOrZero(s string) float64 {
	if f := ParseFloatSafe(s); f != nil {
		return *f
	}
	return 0
}
