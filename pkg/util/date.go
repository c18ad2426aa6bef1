package util

import (
	"strconv"
	"time"
)

// DateLayout is the calendar-day format used for daily candles.
const DateLayout = "2006-01-02"

// ParseTime tries a plain date, RFC3339, RFC3339Nano and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// TruncateDay drops the time-of-day part in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AlignRange truncates both ends to whole days and swaps them if reversed.
func AlignRange(from, to time.Time) (time.Time, time.Time) {
	from, to = TruncateDay(from), TruncateDay(to)
	if !to.IsZero() && from.After(to) {
		from, to = to, from
	}
	return from, to
}
