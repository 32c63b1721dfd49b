// Package timer implements a one-shot deadline scheduler served by a single worker goroutine.
//
// Callers register an [Entry] binding a [Callback] and its argument to a delay.
// The [Scheduler] keeps the live entries in two synchronized views,
// one ordered by deadline and one keyed by [ID], and its worker sleeps until the nearest
// deadline elapses or the schedule changes. Due entries are removed from both views and their
// callbacks are invoked in deadline order. Firing is terminal, entries are never re-armed.
//
// Basic usage:
//
//	s, err := timer.New(nil)
//	if err != nil {
//	    return err
//	}
//	defer s.Close(context.Background())
//
//	// Caller-chosen identity.
//	err = s.Register(timer.NewEntry("retransmit", func(arg any) {
//	    fmt.Println("fired", arg)
//	}, 42, 500, 0))
//
//	// Generated identity.
//	id, err := s.AfterFunc(time.Second, func(any) { fmt.Println("timeout") }, nil)
//	...
//	err = s.Cancel(id)
//
// Deadlines are taken from a monotonic clock reading, so wall clock adjustments do not
// affect them. Callbacks are executed with the scheduler lock held and must be short and
// must not call back into the same scheduler.
package timer
