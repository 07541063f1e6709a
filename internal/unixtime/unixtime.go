// Package unixtime converts between Unix timestamps and broken-down calendar fields.
//
// It ignores leap seconds but respects leap years and assumes the proleptic Gregorian calendar.
// It deliberately does not depend on time.Location: the callers of this package compute
// timezone offsets themselves and only need plain UTC calendar arithmetic.
package unixtime

import (
	"errors"
	"fmt"
	"time"
)

// Fields is a broken-down UTC date and time.
type Fields struct {
	Second  int
	Minute  int
	Hour    int
	Weekday time.Weekday // 0=Sunday. Derived by ToFields, ignored by FromFields.
	Day     int          // Day of month, starting at 1.
	Month   time.Month
	Year    int
}

// String returns the fields in ISO 8601 form, e.g. 2024-03-10T07:00:00.
func (f Fields) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", f.Year, int(f.Month), f.Day, f.Hour, f.Minute, f.Second)
}

// Validate reports every field that is out of range. Weekday is not checked.
func (f Fields) Validate() error {
	var errs error
	if f.Month < time.January || f.Month > time.December {
		errs = errors.Join(errs, fmt.Errorf("month %d: out of range 1..12", f.Month))
	} else if dim := DaysInMonth(f.Month, f.Year); f.Day < 1 || f.Day > dim {
		errs = errors.Join(errs, fmt.Errorf("day %d: out of range 1..%d", f.Day, dim))
	}
	if f.Hour < 0 || f.Hour > 23 {
		errs = errors.Join(errs, fmt.Errorf("hour %d: out of range 0..23", f.Hour))
	}
	if f.Minute < 0 || f.Minute > 59 {
		errs = errors.Join(errs, fmt.Errorf("minute %d: out of range 0..59", f.Minute))
	}
	if f.Second < 0 || f.Second > 59 {
		errs = errors.Join(errs, fmt.Errorf("second %d: out of range 0..59", f.Second))
	}
	return errs
}

// FromFields converts validated fields to a Unix timestamp.
func FromFields(f Fields) (int64, error) {
	if err := f.Validate(); err != nil {
		return 0, fmt.Errorf("invalid fields %s: %w", f, err)
	}
	return FromDateTime(f.Year, int(f.Month), f.Day, f.Hour, f.Minute, f.Second), nil
}

// ToFields breaks a Unix timestamp down into UTC calendar fields.
func ToFields(unix int64) Fields {
	days := floorDiv(unix, secondsPerDay)
	rem := unix - days*secondsPerDay

	y, m, d := civilFromDays(days)
	return Fields{
		Second:  int(rem % secondsPerMinute),
		Minute:  int(rem % secondsPerHour / secondsPerMinute),
		Hour:    int(rem / secondsPerHour),
		Weekday: weekdayFromDays(days),
		Day:     d,
		Month:   time.Month(m),
		Year:    y,
	}
}

// Year returns the UTC calendar year of a Unix timestamp.
func Year(unix int64) int {
	y, _, _ := civilFromDays(floorDiv(unix, secondsPerDay))
	return y
}

// FromDateTime converts a given date and time to a Unix timestamp, i.e. the number of seconds since 1970-01-01 00:00:00 UTC.
// Fields are not validated. Use FromFields for untrusted input.
func FromDateTime(year int, month int, day int, hour int, minute int, second int) int64 {
	daysSinceStartOfYear := [12]int64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

	d := daysFromEpoch(year) + daysSinceStartOfYear[month-1] + int64(day-1)
	if month > 2 && IsLeapYear(year) {
		d++ // +leap day
	}
	return d*secondsPerDay + int64(hour)*secondsPerHour + int64(minute)*secondsPerMinute + int64(second)
}

// IsLeapYear determines if the year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(month time.Month, year int) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	// unixEpochWeekday is the weekday of 1970-01-01.
	unixEpochWeekday = time.Thursday
)

// daysFromEpoch returns the number of days from 1970-01-01 to January 1st of year.
// Negative for years before 1970.
func daysFromEpoch(year int) int64 {
	y := int64(year) - 1
	// Days from 0001-01-01 to year-01-01, minus the same for 1970.
	return y*365 + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - daysFrom0001To1970
}

// daysFrom0001To1970 is the number of days between 0001-01-01 and 1970-01-01.
const daysFrom0001To1970 = 1969*365 + 1969/4 - 1969/100 + 1969/400

// civilFromDays converts days since 1970-01-01 to a year, month and day.
// It works in 400-year eras starting on March 1st so that the leap day is the last day of an era year.
func civilFromDays(days int64) (year, month, day int) {
	z := days + 719468 // shift epoch to 0000-03-01
	era := floorDiv(z, 146097)
	doe := z - era*146097                                  // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11], March based
	d := doy - (153*mp+2)/5 + 1              // [1, 31]
	m := mp + 3
	if m > 12 {
		m -= 12
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

func weekdayFromDays(days int64) time.Weekday {
	w := (days + int64(unixEpochWeekday)) % 7
	if w < 0 {
		w += 7
	}
	return time.Weekday(w)
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
