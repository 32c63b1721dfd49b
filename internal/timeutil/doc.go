// Package timeutil provides the clock abstraction and the deadline arithmetic used by the
// timer engine.
//
// All deadlines are derived from a [Clock]. The default [SystemClock] returns [time.Now],
// whose values carry a monotonic clock reading, so deadline comparisons and waits are never
// affected by wall clock adjustments.
//
// Delays are expressed either in milliseconds or in nanoseconds:
//
//	d, ok := timeutil.Delay(250, 0)     // 250ms, true
//	d, ok = timeutil.Delay(0, 1500)     // 1.5µs, true
//	d, ok = timeutil.Delay(0, 0)        // 0, false
//	deadline := timeutil.SystemClock.Now().Add(d)
//	if timeutil.LaterThan(time.Now(), deadline) {
//	    // due
//	}
package timeutil
