package catalog

import (
	"context"
	"errors"
	"time"
)

// Service defines the public interface of the plan catalog.
type Service interface {
	// ListPlans returns plans ordered for display (display order ascending,
	// price breaks ties). With activeOnly, deactivated plans are filtered
	// out. A store failure surfaces as ErrCatalogUnavailable, never as an
	// empty listing.
	ListPlans(ctx context.Context, activeOnly bool) ([]Plan, error)

	// GetPlan retrieves a plan by ID regardless of its active flag.
	GetPlan(ctx context.Context, planID string) (Plan, error)

	// GetActivePlan retrieves a plan that is still offered for new
	// subscriptions. Deactivated plans return ErrPlanNotFound.
	GetActivePlan(ctx context.Context, planID string) (Plan, error)

	// Administrative operations.
	CreatePlan(ctx context.Context, plan Plan) error
	UpdatePlan(ctx context.Context, plan Plan) error

	// DeactivatePlan removes the plan from future-offer listings. Already
	// issued subscription records are never touched.
	DeactivatePlan(ctx context.Context, planID string) error

	// DeletePlan permanently removes a plan. Rejected with ErrPlanInUse
	// while any live subscription still references it.
	DeletePlan(ctx context.Context, planID string) error
}

// ReferenceChecker reports whether any live subscription references the plan.
// Wired from the subscription store so the catalog can enforce referential
// integrity without importing it.
type ReferenceChecker func(ctx context.Context, planID string) (bool, error)

// Option configures a Service instance.
type Option func(*service)

// WithCache enables caching of plan listings. Mutations invalidate the cache.
func WithCache(cache Cache) Option {
	return func(s *service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithReferenceChecker wires the live-subscription lookup used by DeletePlan.
// Without it, deletes are refused outright: losing referential integrity is
// worse than requiring explicit wiring.
func WithReferenceChecker(fn ReferenceChecker) Option {
	return func(s *service) {
		if fn != nil {
			s.referenced = fn
		}
	}
}

type service struct {
	store      Store
	cache      Cache
	referenced ReferenceChecker
	now        func() time.Time
}

// NewService creates a catalog Service backed by the given store.
// Panics if store is nil to fail fast on misconfiguration.
func NewService(store Store, opts ...Option) Service {
	if store == nil {
		panic("catalog: Store is required")
	}

	s := &service{
		store: store,
		cache: NoOpCache{},
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ListPlans(ctx context.Context, activeOnly bool) ([]Plan, error) {
	key := cacheKeyAll
	if activeOnly {
		key = cacheKeyActive
	}

	if plans, ok := s.cache.Get(ctx, key); ok {
		return plans, nil
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.Join(ErrCatalogUnavailable, err)
	}

	plans := make([]Plan, 0, len(all))
	for _, plan := range all {
		if activeOnly && !plan.Active {
			continue
		}
		plans = append(plans, plan)
	}
	sortPlans(plans)

	// Cache failures are not fatal; the listing was served from the store.
	_ = s.cache.Set(ctx, key, plans)

	return plans, nil
}

func (s *service) GetPlan(ctx context.Context, planID string) (Plan, error) {
	plan, err := s.store.Get(ctx, planID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return Plan{}, ErrPlanNotFound
		}
		return Plan{}, errors.Join(ErrCatalogUnavailable, err)
	}
	return plan, nil
}

func (s *service) GetActivePlan(ctx context.Context, planID string) (Plan, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return Plan{}, err
	}
	if !plan.Active {
		return Plan{}, ErrPlanNotFound
	}
	return plan, nil
}

func (s *service) CreatePlan(ctx context.Context, plan Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	now := s.now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := s.store.Create(ctx, plan); err != nil {
		if errors.Is(err, ErrPlanAlreadyExists) {
			return ErrPlanAlreadyExists
		}
		return errors.Join(ErrCatalogUnavailable, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) UpdatePlan(ctx context.Context, plan Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	current, err := s.GetPlan(ctx, plan.ID)
	if err != nil {
		return err
	}

	plan.CreatedAt = current.CreatedAt
	plan.UpdatedAt = s.now()

	if err := s.store.Update(ctx, plan); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return ErrPlanNotFound
		}
		return errors.Join(ErrCatalogUnavailable, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) DeactivatePlan(ctx context.Context, planID string) error {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return err
	}

	if !plan.Active {
		return nil // already deactivated, nothing to do
	}

	plan.Active = false
	plan.UpdatedAt = s.now()

	if err := s.store.Update(ctx, plan); err != nil {
		return errors.Join(ErrCatalogUnavailable, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) DeletePlan(ctx context.Context, planID string) error {
	if _, err := s.GetPlan(ctx, planID); err != nil {
		return err
	}

	if s.referenced == nil {
		return ErrPlanInUse
	}

	inUse, err := s.referenced(ctx, planID)
	if err != nil {
		return errors.Join(ErrCatalogUnavailable, err)
	}
	if inUse {
		return ErrPlanInUse
	}

	if err := s.store.Delete(ctx, planID); err != nil {
		return errors.Join(ErrCatalogUnavailable, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, cacheKeyAll)
	_ = s.cache.Delete(ctx, cacheKeyActive)
}
