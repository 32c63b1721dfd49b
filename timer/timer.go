package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gotimer/internal/errorutil"
	"github.com/ghettovoice/gotimer/log"
)

// Timer is the contract of a deadline scheduler.
type Timer interface {
	// Register schedules the entry.
	Register(e Entry) error
	// Cancel removes the scheduled entry with the given ID.
	Cancel(id ID) error
}

var _ Timer = (*Scheduler)(nil)

// Scheduler is a one-shot deadline scheduler served by a single worker goroutine.
//
// The worker sleeps until the earliest deadline elapses or the schedule changes,
// then invokes the callbacks of all due entries in deadline order.
// Entries with equal deadlines fire in registration order.
//
// Callbacks run on the worker goroutine while the scheduler lock is held.
// They must return quickly and must not call the methods of the same scheduler,
// otherwise the worker deadlocks. Long-running work should be handed off to another goroutine.
// A panicking callback is recovered and logged, the worker proceeds with the next entry.
//
// All methods are safe for concurrent use.
type Scheduler struct {
	clock       Clock
	idleHorizon time.Duration
	log         *slog.Logger
	metrics     *metrics

	mu  sync.Mutex
	idx index

	lc *lifecycle

	// changed is the dirty flag: a pending value means the schedule changed
	// since the worker computed its wait target.
	changed chan struct{}
	stop    chan struct{}
	done    chan struct{}

	closeOnce sync.Once
}

// New creates a new [Scheduler] and starts its worker.
// Options are optional, if nil, default values are used (see [Options]).
// The scheduler must be closed with [Scheduler.Close] to release the worker.
func New(opts *Options) (*Scheduler, error) {
	if err := opts.validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}

	m, err := newMetrics(opts.registerer(), opts.metricsNamespace(), opts.constLabels())
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	s := &Scheduler{
		clock:       opts.clock(),
		idleHorizon: opts.idleHorizon(),
		log:         opts.log(),
		metrics:     m,
		changed:     make(chan struct{}, 1),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	s.lc = newLifecycle(func() { close(s.stop) })

	go s.run()
	return s, nil
}

// Register schedules the entry.
//
// It fails with [ErrInvalidEntry] if the entry is not valid, with [ErrDuplicateID]
// if an entry with the same ID is already scheduled and with [ErrSchedulerClosed]
// after [Scheduler.Close]. On failure the schedule is left untouched.
func (s *Scheduler) Register(e Entry) error {
	if err := e.validate(); err != nil {
		return errtrace.Wrap(err)
	}

	s.mu.Lock()
	if s.lc.state() != StateRunning {
		s.mu.Unlock()
		return errtrace.Wrap(ErrSchedulerClosed)
	}
	if !s.idx.insert(e) {
		s.mu.Unlock()
		return errtrace.Wrap(errorutil.NewWrapperError(ErrDuplicateID, "id %q", e.id))
	}
	s.metrics.onRegister(s.idx.len())
	s.mu.Unlock()

	s.notify()
	s.log.LogAttrs(context.Background(), slog.LevelDebug, "timer entry registered",
		slog.Any("entry", e),
		slog.Any("pending", log.CalcValue(func() any { return s.Len() })),
	)
	return nil
}

// AfterFunc schedules cb to be called with arg after d and returns the generated entry ID,
// that can be passed to [Scheduler.Cancel].
func (s *Scheduler) AfterFunc(d time.Duration, cb Callback, arg any) (ID, error) {
	id := NewID()
	if err := s.Register(NewEntryWithClock(s.clock, id, cb, arg, 0, int64(d))); err != nil {
		return "", errtrace.Wrap(err)
	}
	return id, nil
}

// Cancel removes the scheduled entry with the given ID.
//
// It fails with [ErrNullID] for the empty ID, with [ErrUnknownID] if the entry is not scheduled
// (never registered, already fired or cancelled) and with [ErrSchedulerClosed] after [Scheduler.Close].
// Once Cancel returns nil the entry callback is guaranteed not to be called,
// even if its deadline has already elapsed.
func (s *Scheduler) Cancel(id ID) error {
	if id.IsZero() {
		return errtrace.Wrap(ErrNullID)
	}

	s.mu.Lock()
	if s.lc.state() != StateRunning {
		s.mu.Unlock()
		return errtrace.Wrap(ErrSchedulerClosed)
	}
	e, ok := s.idx.remove(id)
	if !ok {
		s.mu.Unlock()
		return errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownID, "id %q", id))
	}
	s.metrics.onCancel(s.idx.len())
	s.mu.Unlock()

	s.notify()
	s.log.LogAttrs(context.Background(), slog.LevelDebug, "timer entry cancelled", slog.Any("entry", e))
	return nil
}

// notify marks the schedule dirty and wakes the worker.
func (s *Scheduler) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Has reports whether an entry with the given ID is scheduled.
func (s *Scheduler) Has(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.has(id)
}

// Deadline returns the deadline of the scheduled entry with the given ID.
func (s *Scheduler) Deadline(id ID) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.idx.get(id)
	if !ok {
		return time.Time{}, false
	}
	return e.deadline, true
}

// Len returns the number of scheduled entries.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.len()
}

// Pending returns snapshots of the scheduled entries in fire order.
func (s *Scheduler) Pending() []EntrySnapshot {
	s.mu.Lock()
	entries := s.idx.entries()
	s.mu.Unlock()

	now := s.clock.Now()
	snaps := make([]EntrySnapshot, len(entries))
	for i, e := range entries {
		snaps[i] = snapshotEntry(e, now)
	}
	return snaps
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State { return s.lc.state() }

// Done returns a channel that is closed when the worker has exited.
func (s *Scheduler) Done() <-chan struct{} { return s.done }

// Close stops the worker and waits for it to exit.
// Entries that have not fired yet are discarded, including the already due ones:
// only the callback running at that moment completes.
// If ctx expires first, Close returns the context error, the worker still exits
// as soon as the running callback returns.
// Close is idempotent and must not be called from a callback.
func (s *Scheduler) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		err = s.lc.fire(context.WithoutCancel(ctx), triggerClose)
	})
	if err != nil {
		return errtrace.Wrap(err)
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return errtrace.Wrap(ctx.Err())
	}
}
