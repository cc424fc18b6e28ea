// Package clockpkg provides the time source used to decide "today" for trailing-window reports.
package clockpkg

import "time"

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in the given location.
type System struct {
	Location *time.Location
}

// InZone returns a System clock for the IANA time zone name. An empty name means UTC.
func InZone(name string) (System, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return System{}, err
	}

	return System{Location: loc}, nil
}

// Now returns the current wall-clock time in the configured location.
func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now().UTC()
	}

	return time.Now().In(s.Location)
}

// Fixed always returns the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Today returns the clock's current calendar date as midnight UTC.
//
// The date is taken in the clock's own location, so a System clock in UTC+3 at
// 01:00 local time reports the local date.
func Today(c Clock) time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
