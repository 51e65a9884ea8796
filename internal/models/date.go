package models

import "time"

// DateFormat is the wire format for calendar dates. Zero-padded so that
// lexicographic order matches chronological order.
const DateFormat = "2006-01-02"

// DateOnly truncates t to a calendar date at UTC midnight. All expense,
// budget and template dates are normalized through this before comparison
// or persistence.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
