package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseDateParam accepts YYYY-MM-DD or RFC 3339. An empty string yields nil.
// A date-only value is midnight UTC of that day.
func ParseDateParam(s string) (*time.Time, error) {
	t, _, err := parseDate(s)
	return t, err
}

// ParseDateParamEnd parses an inclusive upper bound. A date-only value covers
// the whole day, so it yields the last instant of that day.
func ParseDateParamEnd(s string) (*time.Time, error) {
	t, dateOnly, err := parseDate(s)
	if err != nil || t == nil || !dateOnly {
		return t, err
	}
	end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &end, nil
}

func parseDate(s string) (*time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, false, nil
	}
	return nil, false, fmt.Errorf("invalid date %q", s)
}
