package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuthorizationRequest carries everything a payment backend needs to decide
// on a charge.
type AuthorizationRequest struct {
	SubscriptionID   uuid.UUID
	AccountID        uuid.UUID
	PlanID           string
	AmountCents      int64
	Currency         string
	PaymentMethodRef string
}

// AuthorizationResult is the payment backend's verdict.
type AuthorizationResult struct {
	Approved       bool
	TransactionRef string
	DeclineReason  string
}

// PaymentAuthorizer decides whether a charge goes through. Implementations
// must honor ctx cancellation: the service treats a deadline as a decline.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error)
}

// DecisionFunc lets tests and demos force authorization outcomes.
type DecisionFunc func(req AuthorizationRequest) *AuthorizationResult

// AuthorizerOption configures the simulated authorizer.
type AuthorizerOption func(*simulatedAuthorizer)

// WithDelay sets how long the simulated authorizer "processes" before
// answering. Useful for exercising confirmation timeouts.
func WithDelay(d time.Duration) AuthorizerOption {
	return func(a *simulatedAuthorizer) {
		if d >= 0 {
			a.delay = d
		}
	}
}

// WithDecision overrides the default approve-everything behavior.
func WithDecision(fn DecisionFunc) AuthorizerOption {
	return func(a *simulatedAuthorizer) {
		if fn != nil {
			a.decide = fn
		}
	}
}

type simulatedAuthorizer struct {
	delay  time.Duration
	decide DecisionFunc
}

// NewSimulatedAuthorizer returns a PaymentAuthorizer that approves every
// charge after a short fixed delay. It stands in for a real payment gateway
// in development and tests; production wiring swaps in a gateway-backed
// implementation of the same interface.
func NewSimulatedAuthorizer(opts ...AuthorizerOption) PaymentAuthorizer {
	a := &simulatedAuthorizer{
		delay: 50 * time.Millisecond,
		decide: func(req AuthorizationRequest) *AuthorizationResult {
			return &AuthorizationResult{
				Approved:       true,
				TransactionRef: fmt.Sprintf("sim_%s", uuid.New()),
			}
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *simulatedAuthorizer) Authorize(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error) {
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.decide(req), nil
}
