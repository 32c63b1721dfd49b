package timer

import "github.com/ghettovoice/gotimer/internal/errorutil"

// Error is a timer error.
// See [errorutil.Error].
type Error = errorutil.Error

// Common errors.
const ErrInvalidArgument = errorutil.ErrInvalidArgument

// Registration errors.
const (
	// ErrInvalidEntry is returned when the entry delay is malformed or its ID or callback is missing.
	ErrInvalidEntry Error = "invalid entry"
	// ErrDuplicateID is returned when an entry with the same ID is already scheduled.
	ErrDuplicateID Error = "entry already registered"
	// ErrUnknownID is returned on cancellation of an ID that is not scheduled.
	ErrUnknownID Error = "entry not registered"
	// ErrNullID is returned on cancellation of the empty ID.
	ErrNullID Error = "null entry id"
	// ErrSchedulerClosed is returned when the scheduler is closing or closed.
	ErrSchedulerClosed Error = "scheduler closed"
)

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}
