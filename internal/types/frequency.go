package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Frequency is the repetition frequency of a recurring transaction.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

var ErrInvalidFrequency = errors.New("the frequency must be one of: daily, weekly, monthly, yearly")

// Valid reports whether the frequency is one of the known values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}

	return false
}

func (f Frequency) String() string {
	return string(f)
}

// Scan writes the value from the database.
func (f *Frequency) Scan(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %v into Frequency", value)
	}

	*f = Frequency(s)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (f Frequency) Value() (driver.Value, error) {
	return string(f), nil
}

// NextDueDate returns the due date following from.
//
// Monthly keeps the day of month and clamps to the last valid day when the
// target month is shorter, so a rule due on January 31 is next due on
// February 29 in a leap year and February 28 otherwise. Yearly clamps
// February 29 to February 28 on non-leap years.
func NextDueDate(frequency Frequency, from time.Time) (time.Time, error) {
	switch frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1), nil

	case FrequencyWeekly:
		return from.AddDate(0, 0, 7), nil

	case FrequencyMonthly:
		return addMonthsClamped(from, 1), nil

	case FrequencyYearly:
		return addYearsClamped(from, 1), nil
	}

	return time.Time{}, ErrInvalidFrequency
}

// addMonthsClamped adds months to t, clamping the day of month to the last
// valid day of the target month. time.Time.AddDate would normalize
// January 31 + 1 month to March 2 or 3 instead.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()

	first := time.Date(year, month, 1, hour, minute, second, t.Nanosecond(), t.Location()).AddDate(0, months, 0)
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, hour, minute, second, t.Nanosecond(), t.Location())
}

// addYearsClamped adds years to t, clamping February 29 to February 28 on
// non-leap years.
func addYearsClamped(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()

	if last := daysIn(year+years, month); day > last {
		day = last
	}

	return time.Date(year+years, month, day, hour, minute, second, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
