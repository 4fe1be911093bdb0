package core

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeMonth turns a numeric ("3", "03") or full English month name
// ("March", "march") into 1-12. Anything else falls back to the month of
// fallback.
func NormalizeMonth(raw string, fallback time.Time) int {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return int(fallback.Month())
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(raw, m.String()) {
			return int(m)
		}
	}
	return int(fallback.Month())
}

// PreviousMonth returns the year and month before the given one.
func PreviousMonth(year, month int) (int, int) {
	if month <= 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// SameMonth reports whether t falls in month/year, whatever the day.
func SameMonth(t time.Time, month, year int) bool {
	return t.Year() == year && int(t.Month()) == month
}
