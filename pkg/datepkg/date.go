// Package datepkg provides calendar date helpers shared by the reports.
package datepkg

import (
	"fmt"
	"time"
)

// Layout is the date layout used by every table source and report.
const Layout = "2006-01-02"

// Date truncates t to midnight UTC of its calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse parses a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}

	return t, nil
}

// DaysBefore returns the date n days before t.
func DaysBefore(t time.Time, n int) time.Time {
	return Date(t).AddDate(0, 0, -n)
}

// MonthsBefore returns the date n calendar months before t.
//
// The day is clamped to the last day of the target month, so 31 March minus one
// month is the last day of February.
func MonthsBefore(t time.Time, n int) time.Time {
	y, m, d := Date(t).Date()

	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, time.UTC)

	if last := daysIn(first); d > last {
		d = last
	}

	return first.AddDate(0, 0, d-1)
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
