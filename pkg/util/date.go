package util

import (
	"strconv"
	"time"
)

// fallbackLayouts cover the date shapes seen across the raw sources:
// ISO dates, month-year reference periods, and bare years.
var fallbackLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"Jan 2006",
	"2006-01",
	"2006",
}

// ParseTime parses a source timestamp. The preferred layout, when given,
// is tried first; the common fallback layouts after it. Returns (t, true)
// if any layout worked.
func ParseTime(s, layout string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if layout != "" {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, l := range fallbackLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
