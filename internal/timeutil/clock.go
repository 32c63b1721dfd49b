package timeutil

//go:generate go tool mockgen -destination=timeutilmock/clock.go -package=timeutilmock . Clock

import (
	"math"
	"time"
)

// Clock is a source of the current time.
type Clock interface {
	// Now returns the current time. Returned values should carry a monotonic reading.
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the [Clock] backed by [time.Now].
var SystemClock Clock = systemClock{}

// ClockFunc adapts an ordinary function to the [Clock] interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

const maxDelayMs = math.MaxInt64 / int64(time.Millisecond)

// Delay converts a delay given in milliseconds or nanoseconds to a [time.Duration].
// Milliseconds take precedence: ns is consulted only when ms is zero.
// It returns false if either value is negative, both are zero,
// or the millisecond delay does not fit into a [time.Duration].
func Delay(ms, ns int64) (time.Duration, bool) {
	switch {
	case ms < 0 || ns < 0:
		return 0, false
	case ms > maxDelayMs:
		return 0, false
	case ms != 0:
		return time.Duration(ms) * time.Millisecond, true
	case ns != 0:
		return time.Duration(ns), true
	default:
		return 0, false
	}
}

// LaterThan reports whether now is at or past the deadline.
func LaterThan(now, deadline time.Time) bool { return !now.Before(deadline) }

// Until returns the time left from the clock's current reading to the deadline.
// It never returns a negative duration.
func Until(clk Clock, deadline time.Time) time.Duration {
	return max(deadline.Sub(clk.Now()), 0)
}
