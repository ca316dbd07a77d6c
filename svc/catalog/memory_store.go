package catalog

import (
	"context"
	"sync"
)

type inMemStore struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewInMemStore returns an in-memory Store seeded with the given plans.
// Plans are deep copied both on the way in and out, so external mutations
// never leak into the store's state. Useful for tests and for deployments
// that ship a static plan catalog.
func NewInMemStore(plans ...Plan) Store {
	s := &inMemStore{plans: make(map[string]Plan, len(plans))}
	for _, plan := range plans {
		s.plans[plan.ID] = plan.clone()
	}
	return s
}

func (s *inMemStore) List(ctx context.Context) ([]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := make([]Plan, 0, len(s.plans))
	for _, plan := range s.plans {
		plans = append(plans, plan.clone())
	}
	return plans, nil
}

func (s *inMemStore) Get(ctx context.Context, planID string) (Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[planID]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return plan.clone(), nil
}

func (s *inMemStore) Create(ctx context.Context, plan Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[plan.ID]; ok {
		return ErrPlanAlreadyExists
	}
	s.plans[plan.ID] = plan.clone()
	return nil
}

func (s *inMemStore) Update(ctx context.Context, plan Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[plan.ID]; !ok {
		return ErrPlanNotFound
	}
	s.plans[plan.ID] = plan.clone()
	return nil
}

func (s *inMemStore) Delete(ctx context.Context, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[planID]; !ok {
		return ErrPlanNotFound
	}
	delete(s.plans, planID)
	return nil
}
