package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store persists subscription records. Implementations must enforce the
// one-pending-per-account invariant in CreatePending: the check and the
// insert happen atomically (a lock in memory, a partial unique index in
// Postgres), so concurrent Subscribe calls cannot both win.
type Store interface {
	// GetCurrent returns the account's most relevant record: a pending
	// checkout if one exists, otherwise the most recently created paid
	// record (active or cancelled). Abandoned records are history only.
	// Returns ErrSubscriptionNotFound when the account has no such record.
	GetCurrent(ctx context.Context, accountID uuid.UUID) (*Subscription, error)

	// GetByID returns the record with the given ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// CreatePending inserts a new pending_payment record at Version 1.
	// Returns ErrSubscriptionAlreadyPending if the account already has one.
	CreatePending(ctx context.Context, sub *Subscription) error

	// Update persists changes to an existing record conditionally on its
	// Version matching the stored one, and bumps the Version on success.
	// Returns ErrConcurrentUpdate when another writer got there first.
	Update(ctx context.Context, sub *Subscription) error

	// ListByAccount returns all of the account's records, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Subscription, error)

	// ListAll returns every record, newest first. Admin reporting only.
	ListAll(ctx context.Context) ([]*Subscription, error)

	// ExistsLiveByPlan reports whether any pending, active, or cancelled
	// record references the plan. Feeds the catalog's delete guard.
	ExistsLiveByPlan(ctx context.Context, planID string) (bool, error)
}
