package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNilState = errors.New("statemachine: state, event and target cannot be nil")
	ErrNilEvent = errors.New("statemachine: event cannot be nil")
)

// Reason classifies why a transition could not be applied.
type Reason string

const (
	// ReasonNoTransition means no transition is registered for the
	// state/event pair.
	ReasonNoTransition Reason = "no_transition"

	// ReasonRejected means transitions exist but every one was blocked
	// by its guards.
	ReasonRejected Reason = "rejected_by_guard"
)

// TransitionError reports a failed transition attempt with enough detail for
// callers to map it to their own error taxonomy.
type TransitionError struct {
	State  string
	Event  string
	Reason Reason
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no valid transition from %q on %q (%s)", e.State, e.Event, e.Reason)
}

// IsTransitionError reports whether err is a TransitionError, optionally
// returning it for inspection.
func IsTransitionError(err error) (*TransitionError, bool) {
	var te *TransitionError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
