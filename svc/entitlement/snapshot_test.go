package entitlement_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fitkit/svc/catalog"
	"github.com/dmitrymomot/fitkit/svc/entitlement"
	"github.com/dmitrymomot/fitkit/svc/subscription"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func member() entitlement.Account {
	return entitlement.Account{ID: uuid.New(), Role: entitlement.RoleMember, CreatedAt: baseTime.AddDate(0, -3, 0)}
}

func admin() entitlement.Account {
	return entitlement.Account{ID: uuid.New(), Role: entitlement.RoleAdmin, CreatedAt: baseTime.AddDate(-1, 0, 0)}
}

func subWith(status subscription.Status, endsAt time.Time) *subscription.Subscription {
	return &subscription.Subscription{
		ID:           uuid.New(),
		AccountID:    uuid.New(),
		PlanID:       "standard-monthly",
		Status:       status,
		BillingCycle: catalog.CycleMonthly,
		StartsAt:     baseTime.AddDate(0, 0, -20),
		EndsAt:       endsAt,
		CreatedAt:    baseTime.AddDate(0, 0, -20),
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("no subscription", func(t *testing.T) {
		t.Parallel()

		snap := entitlement.Resolve(member(), nil, baseTime)
		assert.False(t, snap.IsPremium)
		assert.False(t, snap.IsAdmin)
		assert.False(t, snap.IsExpired)
		assert.Equal(t, 0, snap.DaysRemaining)
	})

	t.Run("active subscription is premium", func(t *testing.T) {
		t.Parallel()

		snap := entitlement.Resolve(member(), subWith(subscription.StatusActive, baseTime.AddDate(0, 0, 10)), baseTime)
		assert.True(t, snap.IsPremium)
		assert.Equal(t, 10, snap.DaysRemaining)
		assert.False(t, snap.IsExpiringSoon)
		assert.False(t, snap.IsExpired)
	})

	t.Run("cancelled with time left is premium", func(t *testing.T) {
		t.Parallel()

		snap := entitlement.Resolve(member(), subWith(subscription.StatusCancelled, baseTime.AddDate(0, 0, 5)), baseTime)
		assert.True(t, snap.IsPremium)
		assert.True(t, snap.IsExpiringSoon)
	})

	t.Run("pending checkout grants nothing", func(t *testing.T) {
		t.Parallel()

		snap := entitlement.Resolve(member(), subWith(subscription.StatusPendingPayment, time.Time{}), baseTime)
		assert.False(t, snap.IsPremium)
		assert.False(t, snap.IsExpired)
	})

	t.Run("lapsed record is expired not premium", func(t *testing.T) {
		t.Parallel()

		snap := entitlement.Resolve(member(), subWith(subscription.StatusActive, baseTime.AddDate(0, 0, -1)), baseTime)
		assert.False(t, snap.IsPremium)
		assert.True(t, snap.IsExpired)
		assert.Equal(t, 0, snap.DaysRemaining)
	})

	t.Run("record that never activated is neither premium nor expired", func(t *testing.T) {
		t.Parallel()

		snap := entitlement.Resolve(member(), subWith(subscription.StatusAbandoned, time.Time{}), baseTime)
		assert.False(t, snap.IsPremium)
		assert.False(t, snap.IsExpired)
	})

	t.Run("admin without subscription", func(t *testing.T) {
		t.Parallel()

		snap := entitlement.Resolve(admin(), nil, baseTime)
		assert.True(t, snap.IsAdmin)
		assert.False(t, snap.IsPremium, "admin role does not fabricate a subscription")
	})

	t.Run("expiring soon boundary", func(t *testing.T) {
		t.Parallel()

		snap := entitlement.Resolve(member(), subWith(subscription.StatusActive, baseTime.AddDate(0, 0, 7)), baseTime)
		assert.True(t, snap.IsExpiringSoon)

		snap = entitlement.Resolve(member(), subWith(subscription.StatusActive, baseTime.AddDate(0, 0, 8)), baseTime)
		assert.False(t, snap.IsExpiringSoon)
	})

	t.Run("idempotent for fixed inputs", func(t *testing.T) {
		t.Parallel()

		account := member()
		sub := subWith(subscription.StatusActive, baseTime.AddDate(0, 0, 12))

		first := entitlement.Resolve(account, sub, baseTime)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, entitlement.Resolve(account, sub, baseTime))
		}
	})
}
