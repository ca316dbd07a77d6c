package statemachine

import "context"

// State represents a state in the machine.
type State interface {
	Name() string
}

// Event represents a trigger that may cause a transition.
type Event interface {
	Name() string
}

// Guard evaluates whether a transition is allowed given runtime conditions.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action executes side effects during a transition. Returning an error aborts
// the transition and leaves the machine in its current state.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Transition defines a state change triggered by an event, with optional
// guards and actions.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard  // all must pass for the transition to proceed
	Actions []Action // executed in order before the state change
}

// Machine is a finite state machine with guarded transitions.
type Machine interface {
	// Current returns the machine's current state.
	Current() State

	// Fire attempts to apply the transition registered for the current
	// state and the given event. Data is passed to guards and actions.
	Fire(ctx context.Context, event Event, data any) error

	// CanFire reports whether Fire would succeed for the given event.
	CanFire(ctx context.Context, event Event, data any) bool
}

// StringState is a string-based State for simple machines.
type StringState string

func (s StringState) Name() string { return string(s) }

// StringEvent is a string-based Event for simple machines.
type StringEvent string

func (e StringEvent) Name() string { return string(e) }
