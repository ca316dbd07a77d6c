package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/fitkit/pkg/pg"
)

const subColumns = `id, account_id, plan_id, status, billing_cycle, starts_at, ends_at, payment_ref, cancelled_at, claimed_at, created_at, updated_at, version`

type pgStore struct {
	pool *pgxpool.Pool
}

// NewPGStore returns a Store backed by the subscriptions table. The
// one-pending-per-account invariant is enforced by a partial unique index on
// (account_id) WHERE status = 'pending_payment' (see migrations/), so
// concurrent CreatePending calls resolve in the database, not in Go.
func NewPGStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("subscription: pgxpool is required")
	}
	return &pgStore{pool: pool}
}

func scanSub(row pgx.Row) (*Subscription, error) {
	var sub Subscription
	err := row.Scan(
		&sub.ID, &sub.AccountID, &sub.PlanID, &sub.Status, &sub.BillingCycle,
		&sub.StartsAt, &sub.EndsAt, &sub.PaymentRef, &sub.CancelledAt,
		&sub.ClaimedAt, &sub.CreatedAt, &sub.UpdatedAt, &sub.Version,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *pgStore) GetCurrent(ctx context.Context, accountID uuid.UUID) (*Subscription, error) {
	// Pending first, then the newest paid record.
	sub, err := scanSub(s.pool.QueryRow(ctx, `
		SELECT `+subColumns+` FROM subscriptions
		WHERE account_id = $1 AND status IN ('pending_payment', 'active', 'cancelled')
		ORDER BY (status = 'pending_payment') DESC, created_at DESC
		LIMIT 1`, accountID))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get current subscription: %w", err)
	}
	return sub, nil
}

func (s *pgStore) GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	sub, err := scanSub(s.pool.QueryRow(ctx, `
		SELECT `+subColumns+` FROM subscriptions WHERE id = $1`, id))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription %s: %w", id, err)
	}
	return sub, nil
}

func (s *pgStore) CreatePending(ctx context.Context, sub *Subscription) error {
	sub.Version = 1
	_, err := s.pool.Exec(ctx, `
		INSERT INTO subscriptions (`+subColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		sub.ID, sub.AccountID, sub.PlanID, sub.Status, sub.BillingCycle,
		sub.StartsAt, sub.EndsAt, sub.PaymentRef, sub.CancelledAt,
		sub.ClaimedAt, sub.CreatedAt, sub.UpdatedAt, sub.Version,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrSubscriptionAlreadyPending
		}
		return fmt.Errorf("create pending subscription: %w", err)
	}
	return nil
}

func (s *pgStore) Update(ctx context.Context, sub *Subscription) error {
	// Optimistic lock: the write only lands if nobody bumped the version
	// since this record was read.
	tag, err := s.pool.Exec(ctx, `
		UPDATE subscriptions SET
			status = $2, starts_at = $3, ends_at = $4, payment_ref = $5,
			cancelled_at = $6, claimed_at = $7, updated_at = $8,
			version = version + 1
		WHERE id = $1 AND version = $9`,
		sub.ID, sub.Status, sub.StartsAt, sub.EndsAt, sub.PaymentRef,
		sub.CancelledAt, sub.ClaimedAt, sub.UpdatedAt, sub.Version,
	)
	if err != nil {
		return fmt.Errorf("update subscription %s: %w", sub.ID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := s.pool.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM subscriptions WHERE id = $1)`, sub.ID).Scan(&exists); err != nil {
			return fmt.Errorf("update subscription %s: %w", sub.ID, err)
		}
		if !exists {
			return ErrSubscriptionNotFound
		}
		return ErrConcurrentUpdate
	}
	sub.Version++
	return nil
}

func (s *pgStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Subscription, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+subColumns+` FROM subscriptions
		WHERE account_id = $1
		ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions for account %s: %w", accountID, err)
	}
	defer rows.Close()
	return collectSubs(rows)
}

func (s *pgStore) ListAll(ctx context.Context) ([]*Subscription, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+subColumns+` FROM subscriptions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	return collectSubs(rows)
}

func (s *pgStore) ExistsLiveByPlan(ctx context.Context, planID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE plan_id = $1 AND status IN ('pending_payment', 'active', 'cancelled')
		)`, planID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check plan references: %w", err)
	}
	return exists, nil
}

func collectSubs(rows pgx.Rows) ([]*Subscription, error) {
	var subs []*Subscription
	for rows.Next() {
		sub, err := scanSub(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
