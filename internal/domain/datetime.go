package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// calendarLayout matches the close-approach "cd" field, e.g. "2020-Jan-01 12:30".
	calendarLayout = "2006-Jan-02 15:04"

	// minuteLayout is the output form; the source carries no seconds.
	minuteLayout = "2006-01-02 15:04"
)

// ParseCalendarDate parses a "YYYY-Mon-DD HH:MM" close-approach date as UTC.
func ParseCalendarDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(calendarLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse calendar date %q: %w", s, err)
	}
	return t, nil
}

// FormatMinute renders t in UTC at minute precision, e.g. "1900-01-01 00:11".
func FormatMinute(t time.Time) string {
	return t.UTC().Format(minuteLayout)
}

// ParseMinute is the inverse of FormatMinute.
func ParseMinute(s string) (time.Time, error) {
	t, err := time.ParseInLocation(minuteLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse datetime %q: %w", s, err)
	}
	return t, nil
}
