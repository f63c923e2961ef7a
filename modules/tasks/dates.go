package tasks

import (
	"errors"
	"time"
)

// ErrInvalidDate is returned when a date argument cannot be parsed.
var ErrInvalidDate = errors.New("invalid date format")

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
}

// ParseDate parses a date argument and normalizes it to UTC midnight.
// Time of day carries no meaning for completions, so any timestamp is
// truncated to its calendar date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}
