package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/fitkit/pkg/pg"
)

const planColumns = `id, name, description, price_amount, currency, duration_days, cycle, features, popular, display_order, active, created_at, updated_at`

type pgStore struct {
	pool *pgxpool.Pool
}

// NewPGStore returns a Store backed by the plans table (see migrations/).
func NewPGStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("catalog: pgxpool is required")
	}
	return &pgStore{pool: pool}
}

func (s *pgStore) List(ctx context.Context) ([]Plan, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+planColumns+` FROM plans`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price.Amount, &p.Price.Currency,
			&p.DurationDays, &p.Cycle, &p.Features, &p.Popular,
			&p.DisplayOrder, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *pgStore) Get(ctx context.Context, planID string) (Plan, error) {
	var p Plan
	err := s.pool.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, planID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price.Amount, &p.Price.Currency,
		&p.DurationDays, &p.Cycle, &p.Features, &p.Popular,
		&p.DisplayOrder, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Plan{}, ErrPlanNotFound
		}
		return Plan{}, fmt.Errorf("get plan %s: %w", planID, err)
	}
	return p, nil
}

func (s *pgStore) Create(ctx context.Context, plan Plan) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO plans (`+planColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		plan.ID, plan.Name, plan.Description, plan.Price.Amount, plan.Price.Currency,
		plan.DurationDays, plan.Cycle, plan.Features, plan.Popular,
		plan.DisplayOrder, plan.Active, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrPlanAlreadyExists
		}
		return fmt.Errorf("create plan %s: %w", plan.ID, err)
	}
	return nil
}

func (s *pgStore) Update(ctx context.Context, plan Plan) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE plans SET
			name = $2, description = $3, price_amount = $4, currency = $5,
			duration_days = $6, cycle = $7, features = $8, popular = $9,
			display_order = $10, active = $11, updated_at = $12
		WHERE id = $1`,
		plan.ID, plan.Name, plan.Description, plan.Price.Amount, plan.Price.Currency,
		plan.DurationDays, plan.Cycle, plan.Features, plan.Popular,
		plan.DisplayOrder, plan.Active, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plan %s: %w", plan.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (s *pgStore) Delete(ctx context.Context, planID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, planID)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			// The subscriptions FK is a second line of defense behind the
			// service-level reference check.
			return errors.Join(ErrPlanInUse, err)
		}
		return fmt.Errorf("delete plan %s: %w", planID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}
