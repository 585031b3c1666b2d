// Package payout aggregates delivered orders into rider earnings per period
// and records when a period has been paid out.
package payout

import (
	"errors"
	"fmt"
	"time"
)

const (
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodCustom = "custom"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Period is the half-open interval [Start, End).
type Period struct {
	Kind  string    `json:"kind"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// ParsePeriod resolves a period selector in loc. For custom periods start
// and end are YYYY-MM-DD dates and the end day is included.
func ParsePeriod(kind, start, end string, now time.Time, loc *time.Location) (Period, error) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch kind {
	case "", PeriodWeek:
		// Monday starts the week
		back := (int(today.Weekday()) + 6) % 7
		s := today.AddDate(0, 0, -back)
		return Period{Kind: PeriodWeek, Start: s, End: s.AddDate(0, 0, 7)}, nil
	case PeriodMonth:
		s := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return Period{Kind: PeriodMonth, Start: s, End: s.AddDate(0, 1, 0)}, nil
	case PeriodCustom:
		if start == "" || end == "" {
			return Period{}, fmt.Errorf("%w: custom period needs start and end", ErrInvalidPeriod)
		}
		s, err := time.ParseInLocation("2006-01-02", start, loc)
		if err != nil {
			return Period{}, fmt.Errorf("%w: start %q", ErrInvalidPeriod, start)
		}
		e, err := time.ParseInLocation("2006-01-02", end, loc)
		if err != nil {
			return Period{}, fmt.Errorf("%w: end %q", ErrInvalidPeriod, end)
		}
		if e.Before(s) {
			return Period{}, fmt.Errorf("%w: end before start", ErrInvalidPeriod)
		}
		return Period{Kind: PeriodCustom, Start: s, End: e.AddDate(0, 0, 1)}, nil
	}
	return Period{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidPeriod, kind)
}
