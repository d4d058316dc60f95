package logquery

import (
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/strataexercise/internal/app/system/apperr"
	"github.com/dalemusser/strataexercise/internal/app/system/calendar"
)

// RawFilters are the optional query-string values exactly as the client
// sent them. An empty string means the filter was not given.
type RawFilters struct {
	From  string
	To    string
	Limit string
}

// Filters are validated log filters. Nil bounds and a zero Limit mean
// "not set".
type Filters struct {
	From  *time.Time
	To    *time.Time
	Limit int64
}

// HasRange reports whether either date bound is set.
func (f Filters) HasRange() bool {
	return f.From != nil || f.To != nil
}

// ParseFilters validates raw filter values. Checks run in the order from,
// to, limit and stop at the first failure.
//
// A date-only "to" covers its whole day, so an exercise logged at any time
// on that date is included.
func ParseFilters(raw RawFilters) (Filters, error) {
	var f Filters

	if s := strings.TrimSpace(raw.From); s != "" {
		from, _, err := calendar.Parse(s)
		if err != nil {
			return Filters{}, apperr.InvalidDate("from")
		}
		f.From = &from
	}

	if s := strings.TrimSpace(raw.To); s != "" {
		to, dateOnly, err := calendar.Parse(s)
		if err != nil {
			return Filters{}, apperr.InvalidDate("to")
		}
		if dateOnly {
			to = calendar.EndOfDay(to)
		}
		f.To = &to
	}

	if s := strings.TrimSpace(raw.Limit); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n <= 0 {
			return Filters{}, apperr.InvalidLimit()
		}
		f.Limit = n
	}

	return f, nil
}
