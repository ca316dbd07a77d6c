package subscription

import (
	"context"

	"github.com/dmitrymomot/fitkit/pkg/statemachine"
)

// Lifecycle events. The service owns firing these; callers go through the
// Service methods instead.
const (
	eventSubscribe        statemachine.StringEvent = "subscribe"
	eventPaymentConfirmed statemachine.StringEvent = "payment_confirmed"
	eventPaymentFailed    statemachine.StringEvent = "payment_failed"
	eventAbandon          statemachine.StringEvent = "abandon"
	eventCancel           statemachine.StringEvent = "cancel"
)

// newLifecycle builds the subscription state machine seeded at the record's
// stored status. The transition table is the single source of truth for
// which status changes are legal:
//
//	pending_payment --payment_confirmed--> active
//	pending_payment --payment_failed-----> abandoned
//	pending_payment --abandon------------> abandoned
//	active ---------o-cancel-------------> cancelled
//
// active is reachable only through payment confirmation; cancelled and
// abandoned are terminal.
func newLifecycle(status Status) statemachine.Machine {
	return statemachine.MustNew(statemachine.StringState(status),
		statemachine.WithTransition(
			statemachine.StringState(StatusPendingPayment),
			statemachine.StringState(StatusActive),
			eventPaymentConfirmed,
		),
		statemachine.WithTransition(
			statemachine.StringState(StatusPendingPayment),
			statemachine.StringState(StatusAbandoned),
			eventPaymentFailed,
		),
		statemachine.WithTransition(
			statemachine.StringState(StatusPendingPayment),
			statemachine.StringState(StatusAbandoned),
			eventAbandon,
		),
		statemachine.WithTransition(
			statemachine.StringState(StatusActive),
			statemachine.StringState(StatusCancelled),
			eventCancel,
		),
	)
}

// transition fires the event against a fresh lifecycle machine for the
// record's status and returns the resulting status. The error is a
// *statemachine.TransitionError when the event is not legal from the current
// status.
func transition(status Status, event statemachine.StringEvent) (Status, error) {
	m := newLifecycle(status)
	if err := m.Fire(context.Background(), event, nil); err != nil {
		return status, err
	}
	return Status(m.Current().Name()), nil
}
