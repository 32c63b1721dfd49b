package timer

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ghettovoice/gotimer/internal/errorutil"
	"github.com/ghettovoice/gotimer/internal/timeutil"
)

// Clock is a source of the current time used to compute and check deadlines.
// See [timeutil.Clock].
type Clock = timeutil.Clock

// ID identifies a scheduled entry.
// The empty ID is the null identity and can never be scheduled.
type ID string

// NewID returns a new random ID.
func NewID() ID { return ID(uuid.NewString()) }

// IsZero reports whether the ID is the null identity.
func (id ID) IsZero() bool { return id == "" }

func (id ID) LogValue() slog.Value { return slog.StringValue(string(id)) }

// Callback is a function invoked by the scheduler when the entry deadline elapses.
// The arg is the value the entry was created with.
type Callback func(arg any)

// Entry binds a callback and its argument to a deadline.
// The deadline is computed once, at construction, as the clock reading plus the requested delay.
//
// Exactly one of the millisecond and nanosecond delays should be non-zero.
// When both are set, milliseconds are authoritative and the nanosecond delay is ignored
// for the deadline computation.
type Entry struct {
	id       ID
	cb       Callback
	arg      any
	delayMs  int64
	delayNs  int64
	deadline time.Time
}

// NewEntry creates a new entry with a deadline computed from the [timeutil.SystemClock].
func NewEntry(id ID, cb Callback, arg any, delayMs, delayNs int64) Entry {
	return NewEntryWithClock(timeutil.SystemClock, id, cb, arg, delayMs, delayNs)
}

// NewEntryWithClock creates a new entry with a deadline computed from clk.
// If clk is nil, the [timeutil.SystemClock] is used.
func NewEntryWithClock(clk Clock, id ID, cb Callback, arg any, delayMs, delayNs int64) Entry {
	if clk == nil {
		clk = timeutil.SystemClock
	}

	e := Entry{
		id:       id,
		cb:       cb,
		arg:      arg,
		delayMs:  delayMs,
		delayNs:  delayNs,
		deadline: clk.Now(),
	}
	if d, ok := timeutil.Delay(delayMs, delayNs); ok {
		e.deadline = e.deadline.Add(d)
	}
	return e
}

// NewEntryAfter creates a new entry that is due after d.
// Non-positive d produces an invalid entry.
func NewEntryAfter(id ID, cb Callback, arg any, d time.Duration) Entry {
	return NewEntry(id, cb, arg, 0, int64(d))
}

// Reset puts the entry into the invalid state.
func (e *Entry) Reset() {
	e.id = ""
	e.cb = nil
	e.arg = nil
	e.delayMs = 0
	e.delayNs = 0
}

// IsValid reports whether the entry can be scheduled.
func (e Entry) IsValid() bool { return e.validate() == nil }

func (e Entry) validate() error {
	switch {
	case e.id.IsZero():
		return errorutil.NewWrapperError(ErrInvalidEntry, "null id") //errtrace:skip
	case e.cb == nil:
		return errorutil.NewWrapperError(ErrInvalidEntry, "nil callback") //errtrace:skip
	case e.delayMs < 0 || e.delayNs < 0:
		return errorutil.NewWrapperError(ErrInvalidEntry, "negative delay") //errtrace:skip
	case e.delayMs == 0 && e.delayNs == 0:
		return errorutil.NewWrapperError(ErrInvalidEntry, "zero delay") //errtrace:skip
	}
	if _, ok := timeutil.Delay(e.delayMs, e.delayNs); !ok {
		return errorutil.NewWrapperError(ErrInvalidEntry, "delay overflow") //errtrace:skip
	}
	return nil
}

// Less reports whether e is due before other.
// Entries with equal deadlines are ordered by ID.
func (e Entry) Less(other Entry) bool {
	if c := e.deadline.Compare(other.deadline); c != 0 {
		return c < 0
	}
	return e.id < other.id
}

// ID returns the entry identity.
func (e Entry) ID() ID { return e.id }

// Callback returns the entry callback.
func (e Entry) Callback() Callback { return e.cb }

// Arg returns the argument passed to the callback.
func (e Entry) Arg() any { return e.arg }

// DelayMs returns the requested millisecond delay.
func (e Entry) DelayMs() int64 { return e.delayMs }

// DelayNs returns the requested nanosecond delay.
func (e Entry) DelayNs() int64 { return e.delayNs }

// Delay returns the effective delay, zero for invalid delays.
func (e Entry) Delay() time.Duration {
	d, _ := timeutil.Delay(e.delayMs, e.delayNs)
	return d
}

// Deadline returns the point in time after which the entry is due.
func (e Entry) Deadline() time.Time { return e.deadline }

func (e Entry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("id", e.id),
		slog.Duration("delay", e.Delay()),
		slog.Time("deadline", e.deadline),
	)
}
