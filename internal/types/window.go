package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Interval is the repetition interval of a budget.
type Interval string

const (
	IntervalMonthly Interval = "monthly"
	IntervalWeekly  Interval = "weekly"
)

var ErrInvalidInterval = errors.New("the interval must be one of: monthly, weekly")

// Valid reports whether the interval is one of the known values.
func (i Interval) Valid() bool {
	return i == IntervalMonthly || i == IntervalWeekly
}

func (i Interval) String() string {
	return string(i)
}

// Scan writes the value from the database.
func (i *Interval) Scan(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %v into Interval", value)
	}

	*i = Interval(s)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (i Interval) Value() (driver.Value, error) {
	return string(i), nil
}

// Window is a contiguous time window against which a budget's spend is
// measured. Both bounds are inclusive.
//
// This is the rolling period model of budget reconciliation. It is
// deliberately distinct from Month, the fixed-calendar model of monthly
// budgets.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the time instant falls into the window.
// The bounds are inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// CurrentWindow returns the window of the interval that now falls into,
// in now's location.
//
// The monthly window runs from the first instant of now's month to
// 23:59:59.999 on its last day. The weekly window runs from Monday 00:00 to
// the following Sunday 23:59:59.999, with Sunday counting as day seven of
// the week it ends.
func CurrentWindow(interval Interval, now time.Time) (Window, error) {
	switch interval {
	case IntervalMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{
			Start: start,
			End:   start.AddDate(0, 1, 0).Add(-time.Millisecond),
		}, nil

	case IntervalWeekly:
		// time.Weekday counts Sunday as 0, the week here starts on Monday
		offset := int(now.Weekday()) - 1
		if now.Weekday() == time.Sunday {
			offset = 6
		}

		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offset)
		return Window{
			Start: start,
			End:   start.AddDate(0, 0, 7).Add(-time.Millisecond),
		}, nil
	}

	return Window{}, ErrInvalidInterval
}
