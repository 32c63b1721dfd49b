package timer

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/ghettovoice/gotimer/internal/timeutil"
	"github.com/ghettovoice/gotimer/log"
)

// run is the worker loop.
// Each iteration computes the wait target, then waits for the stop signal,
// the schedule change or the target, whichever comes first.
func (s *Scheduler) run() {
	defer s.exit()

	tmr := time.NewTimer(s.idleHorizon)
	defer tmr.Stop()

	for {
		if s.stopping() {
			return
		}

		tmr.Reset(s.nextWait())

		select {
		case <-s.stop:
			return
		case <-s.changed:
			// the nearest deadline may have moved, recompute
		case <-tmr.C:
			// select picks at random when the stop signal is ready too
			if s.stopping() {
				return
			}
			s.fireDue()
		}
	}
}

// nextWait returns the time left to the earliest deadline,
// or the idle horizon when nothing is scheduled.
func (s *Scheduler) nextWait() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.idx.peek()
	if !ok {
		return s.idleHorizon
	}
	return timeutil.Until(s.clock, e.deadline)
}

// fireDue removes and invokes all due entries in deadline order.
// The lock is held for the whole pass, so a concurrent Cancel either
// completes before an entry fires or observes it as already fired.
func (s *Scheduler) fireDue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		e, ok := s.idx.peek()
		if !ok {
			return
		}
		now := s.clock.Now()
		if !timeutil.LaterThan(now, e.deadline) {
			return
		}
		// due entries left at close are discarded, not fired
		if s.stopping() {
			return
		}
		s.idx.popFront()
		s.metrics.onFire(s.idx.len(), now.Sub(e.deadline))
		s.invoke(e)
	}
}

func (s *Scheduler) stopping() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *Scheduler) invoke(e Entry) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.onPanic()
			s.log.LogAttrs(context.Background(), slog.LevelError, "timer callback panicked",
				slog.Any("entry", e),
				slog.Any("panic", log.FmtValue(r, false)),
				slog.Any("stack", log.StringValue(debug.Stack())),
			)
		}
	}()

	s.log.LogAttrs(context.Background(), slog.LevelDebug, "firing timer entry", slog.Any("entry", e))
	e.cb(e.arg)
}

// exit discards the pending entries and completes the lifecycle.
func (s *Scheduler) exit() {
	if err := s.lc.fire(context.Background(), triggerExited); err != nil {
		s.log.LogAttrs(context.Background(), slog.LevelWarn, "scheduler lifecycle transition failed",
			slog.Any("error", err),
		)
	}

	// registrations are rejected from here on
	s.mu.Lock()
	n := s.idx.clear()
	s.metrics.onDiscard()
	s.mu.Unlock()

	s.metrics.unregister()
	s.log.LogAttrs(context.Background(), slog.LevelInfo, "scheduler worker stopped",
		slog.Int("discarded", n),
	)
	close(s.done)
}
