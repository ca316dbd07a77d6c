package subscription_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fitkit/svc/catalog"
	"github.com/dmitrymomot/fitkit/svc/subscription"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func paidSub(status subscription.Status, endsAt time.Time) *subscription.Subscription {
	return &subscription.Subscription{
		ID:           uuid.New(),
		AccountID:    uuid.New(),
		PlanID:       "standard-monthly",
		Status:       status,
		BillingCycle: catalog.CycleMonthly,
		StartsAt:     baseTime.AddDate(0, 0, -30),
		EndsAt:       endsAt,
		CreatedAt:    baseTime.AddDate(0, 0, -30),
		UpdatedAt:    baseTime.AddDate(0, 0, -30),
	}
}

func TestSubscriptionIsActiveAt(t *testing.T) {
	t.Parallel()

	t.Run("active within period", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusActive, baseTime.AddDate(0, 0, 10))
		assert.True(t, sub.IsActiveAt(baseTime))
	})

	t.Run("cancelled keeps access until period end", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusCancelled, baseTime.AddDate(0, 0, 10))
		assert.True(t, sub.IsActiveAt(baseTime))
		assert.False(t, sub.IsActiveAt(baseTime.AddDate(0, 0, 11)))
	})

	t.Run("lapsed period", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusActive, baseTime.Add(-time.Minute))
		assert.False(t, sub.IsActiveAt(baseTime))
	})

	t.Run("boundary instant is still active", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusActive, baseTime)
		assert.True(t, sub.IsActiveAt(baseTime))
	})

	t.Run("pending is never active", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusPendingPayment, time.Time{})
		assert.False(t, sub.IsActiveAt(baseTime))
	})

	t.Run("abandoned is never active", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusAbandoned, time.Time{})
		assert.False(t, sub.IsActiveAt(baseTime))
	})

	t.Run("nil receiver", func(t *testing.T) {
		t.Parallel()

		var sub *subscription.Subscription
		assert.False(t, sub.IsActiveAt(baseTime))
	})
}

func TestSubscriptionDaysRemainingAt(t *testing.T) {
	t.Parallel()

	t.Run("full days", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusActive, baseTime.AddDate(0, 0, 10))
		assert.Equal(t, 10, sub.DaysRemainingAt(baseTime))
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusActive, baseTime.Add(time.Hour))
		assert.Equal(t, 1, sub.DaysRemainingAt(baseTime))

		sub.EndsAt = baseTime.Add(25 * time.Hour)
		assert.Equal(t, 2, sub.DaysRemainingAt(baseTime))
	})

	t.Run("lapsed clamps to zero", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusActive, baseTime.AddDate(0, 0, -3))
		assert.Equal(t, 0, sub.DaysRemainingAt(baseTime))
	})

	t.Run("never activated", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusPendingPayment, time.Time{})
		assert.Equal(t, 0, sub.DaysRemainingAt(baseTime))
	})
}

func TestSubscriptionIsExpiredAt(t *testing.T) {
	t.Parallel()

	t.Run("lapsed paid record is expired", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusActive, baseTime.Add(-time.Minute))
		assert.True(t, sub.IsExpiredAt(baseTime))

		sub = paidSub(subscription.StatusCancelled, baseTime.Add(-time.Minute))
		assert.True(t, sub.IsExpiredAt(baseTime))
	})

	t.Run("record that never activated is not expired", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusAbandoned, time.Time{})
		assert.False(t, sub.IsExpiredAt(baseTime))
	})

	t.Run("running record is not expired", func(t *testing.T) {
		t.Parallel()

		sub := paidSub(subscription.StatusActive, baseTime.AddDate(0, 0, 5))
		assert.False(t, sub.IsExpiredAt(baseTime))
	})
}

func TestSubscriptionIsExpiringSoonAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endsAt   time.Time
		expiring bool
	}{
		{"eight days left", baseTime.AddDate(0, 0, 8), false},
		{"exactly seven days", baseTime.AddDate(0, 0, 7), true},
		{"one day left", baseTime.AddDate(0, 0, 1), true},
		{"hours left", baseTime.Add(2 * time.Hour), true},
		{"already lapsed", baseTime.Add(-time.Hour), false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sub := paidSub(subscription.StatusActive, tt.endsAt)
			assert.Equal(t, tt.expiring, sub.IsExpiringSoonAt(baseTime))
		})
	}
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	assert.True(t, subscription.StatusPendingPayment.Valid())
	assert.True(t, subscription.StatusActive.Valid())
	assert.True(t, subscription.StatusCancelled.Valid())
	assert.True(t, subscription.StatusAbandoned.Valid())
	assert.False(t, subscription.Status("expired").Valid())
	assert.False(t, subscription.Status("").Valid())
}
