package intro

import (
	"slices"
	"strings"
	"time"
)

// zonedLayouts carry their own offset (or a literal Z for UTC).
var zonedLayouts = []string{
	time.RFC3339Nano,
	TimestampLayout,
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// localLayouts have no offset and are read as wall-clock time.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006. 1. 2. 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the formats a spreadsheet endpoint is known to return.
// Values without an offset are taken as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	return ParseTimestampIn(s, time.UTC)
}

// ParseTimestampIn is ParseTimestamp with offset-less values read in loc.
func ParseTimestampIn(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortNewestFirst returns a copy of records ordered by timestamp descending.
// Records without a parsable timestamp go last in input order.
func SortNewestFirst(records []Record) []Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		ta, okA := ParseTimestamp(a.Timestamp)
		tb, okB := ParseTimestamp(b.Timestamp)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return sorted
}
