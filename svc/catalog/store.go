package catalog

import "context"

// Store defines plan persistence. Implementations must return ErrPlanNotFound
// and ErrPlanAlreadyExists for the corresponding conditions; any other error
// is treated by the service as the catalog being unreachable.
type Store interface {
	// List returns all plans, active or not, in unspecified order.
	List(ctx context.Context) ([]Plan, error)

	// Get retrieves a plan by ID regardless of its active flag.
	Get(ctx context.Context, planID string) (Plan, error)

	// Create stores a new plan.
	Create(ctx context.Context, plan Plan) error

	// Update replaces an existing plan.
	Update(ctx context.Context, plan Plan) error

	// Delete removes a plan permanently. Referential integrity against live
	// subscriptions is enforced by the service, not the store.
	Delete(ctx context.Context, planID string) error
}
