package utils

import "time"

// Clock abstracts "now" so the synchronizer and cleanup sweeps are
// testable without real wall-clock waits.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Today returns the clock's current date truncated to midnight.
func Today(c Clock) time.Time {
	return DateOnly(c.Now())
}
