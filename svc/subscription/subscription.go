package subscription

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fitkit/svc/catalog"
)

// Status is the stored lifecycle status of a subscription record. Expiry is
// not a stored status: an active record whose period has lapsed is reported
// as expired at read time, never rewritten by a background job.
type Status string

const (
	// StatusPendingPayment is a record created by Subscribe and awaiting
	// payment confirmation. It carries no entitlement.
	StatusPendingPayment Status = "pending_payment"

	// StatusActive is a paid record within its billing period.
	StatusActive Status = "active"

	// StatusCancelled is an active record the member cancelled. Access runs
	// until EndsAt; the status is terminal.
	StatusCancelled Status = "cancelled"

	// StatusAbandoned is a pending record whose payment was declined, timed
	// out, or was explicitly given up. Terminal; kept for audit.
	StatusAbandoned Status = "abandoned"
)

// Valid reports whether the status is one of the stored statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusActive, StatusCancelled, StatusAbandoned:
		return true
	}
	return false
}

// Subscription is a single subscription record. Records are immutable history
// once terminal: superseding a subscription creates a new record rather than
// rewriting the old one.
//
// BillingCycle and the period length are pinned from the plan at purchase
// time, so later catalog edits never alter the terms already sold.
type Subscription struct {
	ID           uuid.UUID            `json:"id"`
	AccountID    uuid.UUID            `json:"account_id"`
	PlanID       string               `json:"plan_id"`
	Status       Status               `json:"status"`
	BillingCycle catalog.BillingCycle `json:"billing_cycle"`
	StartsAt     time.Time            `json:"starts_at,omitzero"`
	EndsAt       time.Time            `json:"ends_at,omitzero"`
	PaymentRef   string               `json:"payment_ref,omitempty"`
	CancelledAt  *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`

	// ClaimedAt marks a pending record whose confirmation is in flight. It
	// keeps a second confirmation from reaching the payment authorizer while
	// the first one is still waiting on it.
	ClaimedAt *time.Time `json:"-"`

	// Version is the optimistic lock counter maintained by the Store. It is
	// set on insert and bumped by every successful Update.
	Version int64 `json:"-"`
}

// IsActiveAt reports whether the record grants access at the given instant:
// it was paid (active or cancelled-with-remaining-time) and the billing
// period has not lapsed. A record that never activated has a zero EndsAt and
// is never active.
func (s *Subscription) IsActiveAt(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.Status != StatusActive && s.Status != StatusCancelled {
		return false
	}
	return !s.EndsAt.IsZero() && !now.After(s.EndsAt)
}

// DaysRemainingAt returns the number of days of access left at the given
// instant, rounded up so a period ending later today still counts as one day.
// Clamped at zero.
func (s *Subscription) DaysRemainingAt(now time.Time) int {
	if s == nil || s.EndsAt.IsZero() {
		return 0
	}
	remaining := s.EndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// IsExpiredAt reports whether a once-paid record's period has lapsed.
// Pending and abandoned records were never paid, so they are not expired.
func (s *Subscription) IsExpiredAt(now time.Time) bool {
	if s == nil || s.EndsAt.IsZero() {
		return false
	}
	if s.Status != StatusActive && s.Status != StatusCancelled {
		return false
	}
	return now.After(s.EndsAt)
}

// IsExpiringSoonAt reports whether the record is active with seven or fewer
// days of access remaining.
func (s *Subscription) IsExpiringSoonAt(now time.Time) bool {
	if !s.IsActiveAt(now) {
		return false
	}
	d := s.DaysRemainingAt(now)
	return d > 0 && d <= 7
}

// clone returns a deep copy of the record.
func (s *Subscription) clone() *Subscription {
	if s == nil {
		return nil
	}
	c := *s
	if s.CancelledAt != nil {
		at := *s.CancelledAt
		c.CancelledAt = &at
	}
	if s.ClaimedAt != nil {
		at := *s.ClaimedAt
		c.ClaimedAt = &at
	}
	return &c
}
