package utils

import (
	"time"
)

// DateLayout is the only wire format for dates in this subsystem.
// Time-of-day carries no meaning; every comparison is date-only.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate parses a "2006-01-02" string into a date-only time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. A checkout date equal to another stay's
// check-in is NOT an overlap, so back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CoversDay reports whether day falls inside [start, end).
func CoversDay(start, end, day time.Time) bool {
	return !day.Before(DateOnly(start)) && day.Before(DateOnly(end))
}

// DaysCovered enumerates every date in [start, end), inclusive of start
// and exclusive of end. start >= end is a contract violation and yields nil.
func DaysCovered(start, end time.Time) []time.Time {
	start = DateOnly(start)
	end = DateOnly(end)
	if !start.Before(end) {
		return nil
	}

	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24))
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
