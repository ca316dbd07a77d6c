package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fitkit/pkg/logger"
	"github.com/dmitrymomot/fitkit/pkg/statemachine"
	"github.com/dmitrymomot/fitkit/pkg/token"
	"github.com/dmitrymomot/fitkit/svc/catalog"
)

// Service drives the subscription lifecycle. All status changes funnel
// through the lifecycle machine in machine.go; nothing else mutates Status.
type Service interface {
	// Subscribe opens a checkout: it creates a pending_payment record pinned
	// to the plan's current terms and returns it with a correlation token
	// for Confirm. An account can hold only one pending checkout at a time
	// (ErrSubscriptionAlreadyPending), but subscribing while a previous
	// record is still active is allowed — that is the renewal/switch path.
	Subscribe(ctx context.Context, accountID uuid.UUID, planID, paymentMethodRef string) (*PendingSubscription, error)

	// Confirm settles a pending checkout. It validates the correlation
	// token, charges through the PaymentAuthorizer under the configured
	// timeout, and on approval activates the record for the plan's full
	// period starting now. A decline or timeout marks the record abandoned
	// and returns ErrPaymentFailed; the account can immediately retry with
	// a fresh Subscribe. Concurrent Confirm calls with the same token charge
	// at most once; losers get ErrInvalidSubscriptionState. Switching plans
	// carries no proration: the old record keeps running until its own
	// EndsAt, the new period starts now.
	Confirm(ctx context.Context, correlationToken string) (*Subscription, error)

	// Abandon explicitly gives up the account's pending checkout, freeing
	// the pending slot.
	Abandon(ctx context.Context, accountID uuid.UUID) error

	// Cancel turns the account's active subscription into a cancelled one.
	// EndsAt is untouched: access continues until the paid period lapses.
	// Cancelled is terminal; resubscribing later creates a new record.
	Cancel(ctx context.Context, accountID uuid.UUID) error

	// Renew opens a checkout for the account's current plan.
	Renew(ctx context.Context, accountID uuid.UUID, paymentMethodRef string) (*PendingSubscription, error)

	// GetCurrent returns the account's current record: a pending checkout
	// if one exists, otherwise the newest paid record.
	GetCurrent(ctx context.Context, accountID uuid.UUID) (*Subscription, error)

	// ListByAccount returns the account's full subscription history.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Subscription, error)

	// ListAll returns every record for admin reporting.
	ListAll(ctx context.Context) ([]*Subscription, error)
}

// PendingSubscription is Subscribe's result: the pending record plus the
// correlation token the client must present to Confirm.
type PendingSubscription struct {
	Subscription *Subscription `json:"subscription"`
	ConfirmToken string        `json:"confirm_token"`
}

// PlanSource is the slice of the catalog the service needs. catalog.Service
// satisfies it.
type PlanSource interface {
	GetActivePlan(ctx context.Context, planID string) (catalog.Plan, error)
	GetPlan(ctx context.Context, planID string) (catalog.Plan, error)
}

// confirmClaims is the correlation token payload. Binding the account ID
// into the signature stops a token minted for one account being replayed by
// another.
type confirmClaims struct {
	SubscriptionID uuid.UUID `json:"sid"`
	AccountID      uuid.UUID `json:"aid"`
}

// Option configures a Service instance.
type Option func(*service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source. Test use only.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	store      Store
	plans      PlanSource
	authorizer PaymentAuthorizer
	cfg        Config
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a subscription Service. Panics if any required
// dependency is nil or the token secret is empty, to fail fast on
// misconfiguration.
func NewService(store Store, plans PlanSource, authorizer PaymentAuthorizer, cfg Config, opts ...Option) Service {
	if store == nil {
		panic("subscription: Store is required")
	}
	if plans == nil {
		panic("subscription: PlanSource is required")
	}
	if authorizer == nil {
		panic("subscription: PaymentAuthorizer is required")
	}
	if cfg.TokenSecret == "" {
		panic("subscription: token secret is required")
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 30 * time.Second
	}

	s := &service{
		store:      store,
		plans:      plans,
		authorizer: authorizer,
		cfg:        cfg,
		log:        slog.Default(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Subscribe(ctx context.Context, accountID uuid.UUID, planID, paymentMethodRef string) (*PendingSubscription, error) {
	plan, err := s.plans.GetActivePlan(ctx, planID)
	if err != nil {
		if errors.Is(err, catalog.ErrPlanNotFound) {
			return nil, ErrPlanNotAvailable
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	now := s.now()
	sub := &Subscription{
		ID:           uuid.New(),
		AccountID:    accountID,
		PlanID:       plan.ID,
		Status:       StatusPendingPayment,
		BillingCycle: plan.Cycle,
		// PaymentRef carries the payment method until Confirm replaces it
		// with the settled transaction reference.
		PaymentRef: paymentMethodRef,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreatePending(ctx, sub); err != nil {
		if errors.Is(err, ErrSubscriptionAlreadyPending) {
			return nil, ErrSubscriptionAlreadyPending
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	confirmToken, err := token.Generate(confirmClaims{
		SubscriptionID: sub.ID,
		AccountID:      sub.AccountID,
	}, s.cfg.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("generate confirmation token: %w", err)
	}

	s.log.InfoContext(ctx, "checkout opened",
		logger.SubscriptionID(sub.ID),
		logger.AccountID(accountID),
		logger.PlanID(plan.ID))

	return &PendingSubscription{Subscription: sub, ConfirmToken: confirmToken}, nil
}

func (s *service) Confirm(ctx context.Context, correlationToken string) (*Subscription, error) {
	claims, err := token.Parse[confirmClaims](correlationToken, s.cfg.TokenSecret)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfirmToken, err)
	}

	sub, err := s.store.GetByID(ctx, claims.SubscriptionID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return nil, ErrInvalidConfirmToken
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if sub.AccountID != claims.AccountID {
		return nil, ErrInvalidConfirmToken
	}
	if sub.Status != StatusPendingPayment {
		return nil, ErrInvalidSubscriptionState
	}
	if sub.ClaimedAt != nil {
		// Another confirmation already holds this record.
		return nil, ErrInvalidSubscriptionState
	}

	// Claim the record before charging. The version check in Update lets
	// exactly one of any simultaneous confirmations land the claim, and the
	// claim mark turns away confirmations that read the record afterwards,
	// so a replayed token cannot charge twice.
	claimed := s.now()
	sub.ClaimedAt = &claimed
	sub.UpdatedAt = claimed
	if err := s.store.Update(ctx, sub); err != nil {
		if errors.Is(err, ErrConcurrentUpdate) {
			return nil, ErrInvalidSubscriptionState
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	// Terms were pinned at Subscribe time; the plan row still exists because
	// deletion is refused while this record references it.
	plan, err := s.plans.GetPlan(ctx, sub.PlanID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	authCtx, cancel := context.WithTimeout(ctx, s.cfg.ConfirmTimeout)
	defer cancel()

	result, err := s.authorizer.Authorize(authCtx, AuthorizationRequest{
		SubscriptionID:   sub.ID,
		AccountID:        sub.AccountID,
		PlanID:           sub.PlanID,
		AmountCents:      plan.Price.Amount,
		Currency:         plan.Price.Currency,
		PaymentMethodRef: sub.PaymentRef,
	})
	if err != nil || result == nil || !result.Approved {
		return nil, s.failPayment(ctx, sub, result, err)
	}

	next, err := transition(sub.Status, eventPaymentConfirmed)
	if err != nil {
		return nil, ErrInvalidSubscriptionState
	}

	now := s.now()
	sub.Status = next
	sub.StartsAt = now
	sub.EndsAt = now.AddDate(0, 0, plan.DurationDays)
	sub.PaymentRef = result.TransactionRef
	sub.UpdatedAt = now

	if err := s.store.Update(ctx, sub); err != nil {
		if errors.Is(err, ErrConcurrentUpdate) {
			return nil, ErrInvalidSubscriptionState
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	s.log.InfoContext(ctx, "subscription activated",
		logger.SubscriptionID(sub.ID),
		logger.AccountID(sub.AccountID),
		logger.PlanID(sub.PlanID),
		slog.Time("ends_at", sub.EndsAt))

	return sub, nil
}

// failPayment marks the pending record abandoned and reports the decline.
// The pending slot is freed, so a retry starts from a clean Subscribe.
func (s *service) failPayment(ctx context.Context, sub *Subscription, result *AuthorizationResult, authErr error) error {
	reason := "declined"
	switch {
	case errors.Is(authErr, context.DeadlineExceeded):
		reason = "authorization timed out"
	case authErr != nil:
		reason = authErr.Error()
	case result != nil && result.DeclineReason != "":
		reason = result.DeclineReason
	}

	next, err := transition(sub.Status, eventPaymentFailed)
	if err != nil {
		return ErrInvalidSubscriptionState
	}

	now := s.now()
	sub.Status = next
	sub.UpdatedAt = now

	if err := s.store.Update(ctx, sub); err != nil {
		if errors.Is(err, ErrConcurrentUpdate) {
			return ErrInvalidSubscriptionState
		}
		return errors.Join(ErrStoreUnavailable, err)
	}

	s.log.WarnContext(ctx, "payment failed",
		logger.SubscriptionID(sub.ID),
		logger.AccountID(sub.AccountID),
		slog.String("reason", reason))

	return fmt.Errorf("%w: %s", ErrPaymentFailed, reason)
}

func (s *service) Abandon(ctx context.Context, accountID uuid.UUID) error {
	sub, err := s.store.GetCurrent(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return ErrSubscriptionNotFound
		}
		return errors.Join(ErrStoreUnavailable, err)
	}

	next, err := transition(sub.Status, eventAbandon)
	if err != nil {
		if _, ok := statemachine.IsTransitionError(err); ok {
			return ErrInvalidSubscriptionState
		}
		return err
	}

	sub.Status = next
	sub.UpdatedAt = s.now()

	if err := s.store.Update(ctx, sub); err != nil {
		if errors.Is(err, ErrConcurrentUpdate) {
			return ErrInvalidSubscriptionState
		}
		return errors.Join(ErrStoreUnavailable, err)
	}

	s.log.InfoContext(ctx, "checkout abandoned",
		logger.SubscriptionID(sub.ID),
		logger.AccountID(accountID))

	return nil
}

func (s *service) Cancel(ctx context.Context, accountID uuid.UUID) error {
	// Cancel targets the paid record, not a pending checkout that may be
	// sitting in front of it.
	subs, err := s.store.ListByAccount(ctx, accountID)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	var active *Subscription
	for _, sub := range subs {
		if sub.Status == StatusActive {
			active = sub
			break
		}
	}
	if active == nil {
		if len(subs) == 0 {
			return ErrSubscriptionNotFound
		}
		return ErrInvalidSubscriptionState
	}

	next, err := transition(active.Status, eventCancel)
	if err != nil {
		return ErrInvalidSubscriptionState
	}

	now := s.now()
	active.Status = next
	active.CancelledAt = &now
	active.UpdatedAt = now

	if err := s.store.Update(ctx, active); err != nil {
		if errors.Is(err, ErrConcurrentUpdate) {
			return ErrInvalidSubscriptionState
		}
		return errors.Join(ErrStoreUnavailable, err)
	}

	s.log.InfoContext(ctx, "subscription cancelled",
		logger.SubscriptionID(active.ID),
		logger.AccountID(accountID),
		slog.Time("access_until", active.EndsAt))

	return nil
}

func (s *service) Renew(ctx context.Context, accountID uuid.UUID, paymentMethodRef string) (*PendingSubscription, error) {
	sub, err := s.store.GetCurrent(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if sub.Status == StatusPendingPayment {
		return nil, ErrSubscriptionAlreadyPending
	}
	return s.Subscribe(ctx, accountID, sub.PlanID, paymentMethodRef)
}

func (s *service) GetCurrent(ctx context.Context, accountID uuid.UUID) (*Subscription, error) {
	sub, err := s.store.GetCurrent(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return sub, nil
}

func (s *service) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Subscription, error) {
	subs, err := s.store.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return subs, nil
}

func (s *service) ListAll(ctx context.Context) ([]*Subscription, error) {
	subs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return subs, nil
}
