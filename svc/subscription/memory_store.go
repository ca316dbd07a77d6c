package subscription

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type inMemStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription
}

// NewInMemStore returns an in-memory Store. The one-pending-per-account
// invariant is enforced under the store's write lock, so it holds under
// concurrent Subscribe calls. Records are deep copied on the way in and out.
func NewInMemStore() Store {
	return &inMemStore{subs: make(map[uuid.UUID]*Subscription)}
}

func (s *inMemStore) GetCurrent(ctx context.Context, accountID uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var current *Subscription
	for _, sub := range s.subs {
		if sub.AccountID != accountID {
			continue
		}
		switch sub.Status {
		case StatusPendingPayment:
			// A pending checkout always wins.
			return sub.clone(), nil
		case StatusActive, StatusCancelled:
			if current == nil || sub.CreatedAt.After(current.CreatedAt) {
				current = sub
			}
		}
	}
	if current == nil {
		return nil, ErrSubscriptionNotFound
	}
	return current.clone(), nil
}

func (s *inMemStore) GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return sub.clone(), nil
}

func (s *inMemStore) CreatePending(ctx context.Context, sub *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.subs {
		if existing.AccountID == sub.AccountID && existing.Status == StatusPendingPayment {
			return ErrSubscriptionAlreadyPending
		}
	}
	sub.Version = 1
	s.subs[sub.ID] = sub.clone()
	return nil
}

func (s *inMemStore) Update(ctx context.Context, sub *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.subs[sub.ID]
	if !ok {
		return ErrSubscriptionNotFound
	}
	if stored.Version != sub.Version {
		return ErrConcurrentUpdate
	}
	sub.Version++
	s.subs[sub.ID] = sub.clone()
	return nil
}

func (s *inMemStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var subs []*Subscription
	for _, sub := range s.subs {
		if sub.AccountID == accountID {
			subs = append(subs, sub.clone())
		}
	}
	sortNewestFirst(subs)
	return subs, nil
}

func (s *inMemStore) ListAll(ctx context.Context) ([]*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]*Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub.clone())
	}
	sortNewestFirst(subs)
	return subs, nil
}

func (s *inMemStore) ExistsLiveByPlan(ctx context.Context, planID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subs {
		if sub.PlanID != planID {
			continue
		}
		switch sub.Status {
		case StatusPendingPayment, StatusActive, StatusCancelled:
			return true, nil
		}
	}
	return false, nil
}

func sortNewestFirst(subs []*Subscription) {
	slices.SortFunc(subs, func(a, b *Subscription) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
