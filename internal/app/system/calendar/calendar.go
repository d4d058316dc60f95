// Package calendar parses the date strings clients send and formats stored
// dates the way the API returns them ("Mon Aug 01 2022").
//
// All dates are handled in UTC. A date-only input ("2022-08-01") means
// midnight UTC of that day.
package calendar

import (
	"errors"
	"strings"
	"time"
)

// DisplayLayout is the calendar format used for every date the API returns.
const DisplayLayout = "Mon Jan 02 2006"

// ErrInvalid is returned when a string is not a recognizable calendar date.
var ErrInvalid = errors.New("invalid date")

var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	DisplayLayout,
	"Mon Jan 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parse reads s as a calendar date or date-time. dateOnly is true when s
// carried no time-of-day.
func Parse(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, ErrInvalid
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true, nil
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), false, nil
		}
	}
	return time.Time{}, false, ErrInvalid
}

// Valid reports whether s parses as a calendar date.
func Valid(s string) bool {
	_, _, err := Parse(s)
	return err == nil
}

// EndOfDay returns the last millisecond of t's UTC day. MongoDB stores
// dates at millisecond precision, so this is the inclusive upper bound
// for "everything on that day".
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start.Add(24*time.Hour - time.Millisecond)
}

// Format renders t in DisplayLayout (UTC).
func Format(t time.Time) string {
	return t.UTC().Format(DisplayLayout)
}

// Now returns the current time truncated to MongoDB's millisecond precision,
// so a value returned to the client matches what was stored.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
