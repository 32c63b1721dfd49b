package timer

import (
	"context"
	"sync"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"
)

// State is a scheduler lifecycle state.
type State string

const (
	// StateRunning is the state of a scheduler accepting registrations.
	StateRunning State = "running"
	// StateClosing is the state of a scheduler waiting for its worker to exit.
	StateClosing State = "closing"
	// StateClosed is the state of a scheduler whose worker has exited.
	StateClosed State = "closed"
)

type lifecycleTrigger string

const (
	triggerClose  lifecycleTrigger = "close"
	triggerExited lifecycleTrigger = "exited"
)

// lifecycle drives running -> closing -> closed.
// onClosing is executed once when the closing state is entered.
// It has its own lock, so closing never waits for a running callback.
type lifecycle struct {
	mu sync.Mutex
	sm *stateless.StateMachine
}

func newLifecycle(onClosing func()) *lifecycle {
	sm := stateless.NewStateMachine(StateRunning)
	sm.Configure(StateRunning).
		Permit(triggerClose, StateClosing).
		Permit(triggerExited, StateClosed)
	sm.Configure(StateClosing).
		OnEntry(func(context.Context, ...any) error {
			onClosing()
			return nil
		}).
		Permit(triggerExited, StateClosed).
		Ignore(triggerClose)
	sm.Configure(StateClosed).
		Ignore(triggerClose).
		Ignore(triggerExited)
	return &lifecycle{sm: sm}
}

func (l *lifecycle) state() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sm.MustState().(State) //nolint:forcetypeassert
}

func (l *lifecycle) fire(ctx context.Context, t lifecycleTrigger) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errtrace.Wrap(l.sm.FireCtx(ctx, t))
}
