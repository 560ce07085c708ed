package dates

import (
	"fmt"
	"time"
)

// AnchorYear stands in for an absent birth year. 1972 is a leap year, so
// February 29 birthdays stay representable, and it predates any living
// contact's next occurrence so the yearly recurrence covers every future
// year.
const AnchorYear = 1972

// Date is a calendar date as reported by the contacts provider.
// Year may be zero when the contact recorded a recurring-only birthday.
type Date struct {
	Year  int
	Month int
	Day   int
}

// HasYear reports whether the provider knew the birth year.
func (d Date) HasYear() bool {
	return d.Year != 0
}

// Formatter renders a provider date as an all-day calendar date string.
type Formatter interface {
	Format(d Date) (string, error)
}

// New returns the default Formatter.
func New() Formatter {
	return &DefaultFormatter{}
}

// DefaultFormatter implements the Formatter interface. It zero-pads month
// and day, substitutes AnchorYear when the year is absent, and rejects
// dates that do not exist on the calendar.
type DefaultFormatter struct{}

// Format renders d as "YYYY-MM-DD".
func (p *DefaultFormatter) Format(d Date) (string, error) {
	year := d.Year
	if !d.HasYear() {
		year = AnchorYear
	}

	if d.Month < 1 || d.Month > 12 {
		return "", fmt.Errorf("month %d out of range", d.Month)
	}
	if d.Day < 1 || d.Day > 31 {
		return "", fmt.Errorf("day %d out of range", d.Day)
	}

	// time.Date normalizes overflow (April 31 becomes May 1); a changed
	// round trip means the date does not exist.
	t := time.Date(year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.Day || t.Month() != time.Month(d.Month) {
		return "", fmt.Errorf("no such date: year %d, month %d, day %d", year, d.Month, d.Day)
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, d.Month, d.Day), nil
}
