package layout

import (
	"slices"
	"time"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// rangeMarginYears is how far the derived range extends past the data.
const rangeMarginYears = 2

const secondsPerDay = 24 * 60 * 60

// DateRange bounds the visible axis. Both ends are inclusive.
type DateRange struct {
	FarLeft  time.Time `json:"far_left"`
	FarRight time.Time `json:"far_right"`
}

// DefaultRange derives the range from the data: the earliest entry moved two
// years back and the latest moved two years forward. In both cases the day
// of the month is forced to 1 so that a February 29 never lands on a
// non-leap year; month and clock time are kept.
func DefaultRange(entries []entry.Entry) (DateRange, error) {
	if len(entries) == 0 {
		return DateRange{}, errors.New(errors.ErrCodeEmptyDataset, "no entries to draw")
	}
	return DateRange{
		FarLeft:  shiftYears(earliest(entries), -rangeMarginYears),
		FarRight: shiftYears(latest(entries), rangeMarginYears),
	}, nil
}

// Days is the whole number of days from FarLeft to FarRight.
func (r DateRange) Days() int {
	return DaysBetween(r.FarLeft, r.FarRight)
}

// Contains reports whether t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.FarLeft) && !r.FarRight.Before(t)
}

// Validate rejects ranges that cannot be mapped onto an axis: zero whole
// days wide, or with FarRight before FarLeft.
func (r DateRange) Validate() error {
	if d := r.Days(); d <= 0 {
		return errors.New(errors.ErrCodeDegenerateRange,
			"date range %s to %s spans %d days", r.FarLeft.Format(time.DateOnly), r.FarRight.Format(time.DateOnly), d)
	}
	return nil
}

// DaysBetween returns the number of whole days from a to b, rounded toward
// negative infinity like a calendar day count.
func DaysBetween(a, b time.Time) int {
	secs := b.Unix() - a.Unix()
	if b.Nanosecond() < a.Nanosecond() {
		secs--
	}
	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 && secs < 0 {
		days--
	}
	return int(days)
}

func shiftYears(t time.Time, years int) time.Time {
	return time.Date(t.Year()+years, t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func byTime(a, b entry.Entry) int { return a.Time.Compare(b.Time) }

func earliest(entries []entry.Entry) time.Time { return slices.MinFunc(entries, byTime).Time }

func latest(entries []entry.Entry) time.Time { return slices.MaxFunc(entries, byTime).Time }
