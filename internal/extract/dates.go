package extract

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Accepted report/opening date layouts. Single-digit day and month are tolerated.
var dateLayouts = []string{"2006-1-2", "2-1-2006"}

// ParseDate parses YYYY-MM-DD or DD-MM-YYYY. ok is false for anything else.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseMonthKey parses a history key of the form MM-YY into the first day of
// that month, assuming year 2000+YY. ok is false for malformed keys.
func ParseMonthKey(key string) (time.Time, bool) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return time.Time{}, false
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	yy, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || yy < 0 {
		return time.Time{}, false
	}

	return time.Date(2000+yy, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

// ParseCutoff parses a point-in-time cutoff such as "2025-04-06T18:06:11.418Z".
// Only the date part is used.
func ParseCutoff(s string) (time.Time, bool) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(s), "T")
	if datePart == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-1-2", datePart)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MonthStart truncates t to the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// windowStart is the inclusive start of an N-month lookback. Months are 30 days.
func windowStart(ref time.Time, months int) time.Time {
	return ref.AddDate(0, 0, -30*months)
}

// inWindow reports start <= t <= end.
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// yearsBetween returns whole elapsed days divided by 365.25.
func yearsBetween(from, to time.Time) float64 {
	days := math.Floor(to.Sub(from).Hours() / 24)
	return days / 365.25
}
