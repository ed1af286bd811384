package calendar

import (
	"fmt"
	"time"
)

// Date is a plain civil date, already resolved in the deployment's local
// timezone. Core logic never derives one from ambient system time; callers
// compute it once at the process boundary and pass it in.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// YearMonth renders the compact YYYYMM key used for schedule record IDs.
func (d Date) YearMonth() string {
	return YearMonthKey(d.Year, d.Month)
}

// Weekday returns the day of week for the date.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// YearMonthKey builds the compact YYYYMM key for a year and month.
func YearMonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d%02d", year, int(month))
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextMonth returns the month following the given one, rolling the year over
// December.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
