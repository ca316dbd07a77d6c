// Package statemachine provides a small guarded finite state machine used to
// enforce legal lifecycle transitions.
//
// A machine is seeded at an initial state and configured with a static
// transition table. Firing an event looks up the transitions registered for
// the current state, evaluates their guards in registration order, runs the
// actions of the first passing transition, and advances the state. Guard
// rejection and missing transitions are reported as *TransitionError so
// callers can translate them into domain errors.
//
//	machine := statemachine.MustNew(statemachine.StringState("pending"),
//	    statemachine.WithTransition(
//	        statemachine.StringState("pending"),
//	        statemachine.StringState("active"),
//	        statemachine.StringEvent("confirm"),
//	    ),
//	)
//
//	if err := machine.Fire(ctx, statemachine.StringEvent("confirm"), nil); err != nil {
//	    // transition not allowed
//	}
//
// Machines are safe for concurrent use, but are cheap enough to build
// per-entity: seed one at an entity's stored state, fire the event, and
// persist Current().
package statemachine
