package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fitkit/svc/catalog"
)

type failingStore struct {
	catalog.Store
	err error
}

func (s failingStore) List(ctx context.Context) ([]catalog.Plan, error) {
	return nil, s.err
}

// countingCache tracks listing cache traffic so tests can assert hit/miss and
// invalidation behavior without Redis.
type countingCache struct {
	entries map[string][]catalog.Plan
	sets    int
	deletes int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[string][]catalog.Plan)}
}

func (c *countingCache) Get(ctx context.Context, key string) ([]catalog.Plan, bool) {
	plans, ok := c.entries[key]
	return plans, ok
}

func (c *countingCache) Set(ctx context.Context, key string, plans []catalog.Plan) error {
	c.entries[key] = plans
	c.sets++
	return nil
}

func (c *countingCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	c.deletes++
	return nil
}

func threePlans() []catalog.Plan {
	weekly := validPlan()
	weekly.ID = "standard-weekly"
	weekly.Cycle = catalog.CycleWeekly
	weekly.DurationDays = 7
	weekly.Price.Amount = 399
	weekly.DisplayOrder = 1

	monthly := validPlan()
	monthly.DisplayOrder = 2

	legacy := validPlan()
	legacy.ID = "legacy-yearly"
	legacy.Cycle = catalog.CycleYearly
	legacy.DurationDays = 365
	legacy.Price.Amount = 7900
	legacy.DisplayOrder = 3
	legacy.Active = false

	return []catalog.Plan{monthly, legacy, weekly}
}

func TestServiceListPlans(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("orders by display order", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(threePlans()...))

		plans, err := svc.ListPlans(ctx, false)
		require.NoError(t, err)
		require.Len(t, plans, 3)
		assert.Equal(t, "standard-weekly", plans[0].ID)
		assert.Equal(t, "standard-monthly", plans[1].ID)
		assert.Equal(t, "legacy-yearly", plans[2].ID)
	})

	t.Run("activeOnly filters deactivated plans", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(threePlans()...))

		plans, err := svc.ListPlans(ctx, true)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		for _, p := range plans {
			assert.True(t, p.Active)
		}
	})

	t.Run("ties broken by price", func(t *testing.T) {
		t.Parallel()

		a := validPlan()
		a.ID = "pricey"
		a.Price.Amount = 1999
		b := validPlan()
		b.ID = "cheap"
		b.Price.Amount = 499

		svc := catalog.NewService(catalog.NewInMemStore(a, b))

		plans, err := svc.ListPlans(ctx, false)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, "cheap", plans[0].ID)
	})

	t.Run("store failure surfaces as unavailable", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(failingStore{err: errors.New("conn refused")})

		plans, err := svc.ListPlans(ctx, true)
		assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
		assert.Nil(t, plans)
	})

	t.Run("second listing served from cache", func(t *testing.T) {
		t.Parallel()

		cache := newCountingCache()
		svc := catalog.NewService(catalog.NewInMemStore(threePlans()...), catalog.WithCache(cache))

		_, err := svc.ListPlans(ctx, true)
		require.NoError(t, err)
		_, err = svc.ListPlans(ctx, true)
		require.NoError(t, err)

		assert.Equal(t, 1, cache.sets)
	})

	t.Run("mutation invalidates cache", func(t *testing.T) {
		t.Parallel()

		cache := newCountingCache()
		svc := catalog.NewService(catalog.NewInMemStore(threePlans()...), catalog.WithCache(cache))

		_, err := svc.ListPlans(ctx, true)
		require.NoError(t, err)

		newPlan := validPlan()
		newPlan.ID = "premium-monthly"
		require.NoError(t, svc.CreatePlan(ctx, newPlan))

		plans, err := svc.ListPlans(ctx, true)
		require.NoError(t, err)
		assert.Len(t, plans, 3)
	})
}

func TestServiceGetPlan(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns plan regardless of active flag", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(threePlans()...))

		plan, err := svc.GetPlan(ctx, "legacy-yearly")
		require.NoError(t, err)
		assert.False(t, plan.Active)
	})

	t.Run("active lookup hides deactivated plan", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(threePlans()...))

		_, err := svc.GetActivePlan(ctx, "legacy-yearly")
		assert.ErrorIs(t, err, catalog.ErrPlanNotFound)

		plan, err := svc.GetActivePlan(ctx, "standard-monthly")
		require.NoError(t, err)
		assert.True(t, plan.Active)
	})

	t.Run("unknown plan", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore())

		_, err := svc.GetPlan(ctx, "nope")
		assert.ErrorIs(t, err, catalog.ErrPlanNotFound)
	})
}

func TestServiceMutations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create validates plan", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore())

		bad := validPlan()
		bad.Cycle = "hourly"
		assert.ErrorIs(t, svc.CreatePlan(ctx, bad), catalog.ErrInvalidPlan)
	})

	t.Run("create sets timestamps", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore())

		require.NoError(t, svc.CreatePlan(ctx, validPlan()))

		plan, err := svc.GetPlan(ctx, "standard-monthly")
		require.NoError(t, err)
		assert.False(t, plan.CreatedAt.IsZero())
		assert.Equal(t, plan.CreatedAt, plan.UpdatedAt)
	})

	t.Run("create rejects duplicate", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(validPlan()))

		assert.ErrorIs(t, svc.CreatePlan(ctx, validPlan()), catalog.ErrPlanAlreadyExists)
	})

	t.Run("update preserves created timestamp", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore())
		require.NoError(t, svc.CreatePlan(ctx, validPlan()))

		before, err := svc.GetPlan(ctx, "standard-monthly")
		require.NoError(t, err)

		updated := validPlan()
		updated.Name = "Standard Plus"
		require.NoError(t, svc.UpdatePlan(ctx, updated))

		after, err := svc.GetPlan(ctx, "standard-monthly")
		require.NoError(t, err)
		assert.Equal(t, "Standard Plus", after.Name)
		assert.Equal(t, before.CreatedAt, after.CreatedAt)
	})

	t.Run("deactivate flips active flag only", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(validPlan()))

		require.NoError(t, svc.DeactivatePlan(ctx, "standard-monthly"))

		plan, err := svc.GetPlan(ctx, "standard-monthly")
		require.NoError(t, err)
		assert.False(t, plan.Active)
		assert.Equal(t, "Standard", plan.Name)

		// Idempotent.
		require.NoError(t, svc.DeactivatePlan(ctx, "standard-monthly"))
	})
}

func TestServiceDeletePlan(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("refused without reference checker", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(validPlan()))

		assert.ErrorIs(t, svc.DeletePlan(ctx, "standard-monthly"), catalog.ErrPlanInUse)
	})

	t.Run("refused while referenced", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(validPlan()),
			catalog.WithReferenceChecker(func(ctx context.Context, planID string) (bool, error) {
				return true, nil
			}))

		assert.ErrorIs(t, svc.DeletePlan(ctx, "standard-monthly"), catalog.ErrPlanInUse)

		_, err := svc.GetPlan(ctx, "standard-monthly")
		assert.NoError(t, err)
	})

	t.Run("deletes unreferenced plan", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(validPlan()),
			catalog.WithReferenceChecker(func(ctx context.Context, planID string) (bool, error) {
				return false, nil
			}))

		require.NoError(t, svc.DeletePlan(ctx, "standard-monthly"))

		_, err := svc.GetPlan(ctx, "standard-monthly")
		assert.ErrorIs(t, err, catalog.ErrPlanNotFound)
	})

	t.Run("checker failure surfaces as unavailable", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore(validPlan()),
			catalog.WithReferenceChecker(func(ctx context.Context, planID string) (bool, error) {
				return false, errors.New("store down")
			}))

		assert.ErrorIs(t, svc.DeletePlan(ctx, "standard-monthly"), catalog.ErrCatalogUnavailable)
	})

	t.Run("unknown plan", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(catalog.NewInMemStore())

		assert.ErrorIs(t, svc.DeletePlan(ctx, "nope"), catalog.ErrPlanNotFound)
	})
}

func TestNewServicePanicsOnNilStore(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { catalog.NewService(nil) })
}
