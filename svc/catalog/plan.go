package catalog

import (
	"fmt"
	"slices"
	"time"
)

// BillingCycle represents how often a plan bills.
type BillingCycle string

const (
	CycleWeekly  BillingCycle = "weekly"
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Valid reports whether the cycle is one of the known billing cycles.
func (c BillingCycle) Valid() bool {
	switch c {
	case CycleWeekly, CycleMonthly, CycleYearly:
		return true
	}
	return false
}

// Money represents a monetary amount in the smallest currency unit.
// $9.99 USD is Money{Amount: 999, Currency: "USD"}.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Plan describes a purchasable subscription tier. Plans are identified by a
// stable string slug (e.g. "standard-monthly") so client code and payment
// references stay readable.
type Plan struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Price        Money        `json:"price"`
	DurationDays int          `json:"duration_days"`
	Cycle        BillingCycle `json:"cycle"`
	Features     []string     `json:"features"` // ordered as displayed
	Popular      bool         `json:"popular"`
	DisplayOrder int          `json:"display_order"`
	Active       bool         `json:"active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Validate checks the plan's invariants. It is called before any write so
// malformed plans are rejected before touching storage.
func (p Plan) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: plan id is required", ErrInvalidPlan)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: plan name is required", ErrInvalidPlan)
	}
	if p.Price.Amount < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidPlan)
	}
	if p.Price.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidPlan)
	}
	if p.DurationDays <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidPlan)
	}
	if !p.Cycle.Valid() {
		return fmt.Errorf("%w: unknown billing cycle %q", ErrInvalidPlan, p.Cycle)
	}
	return nil
}

// clone returns a deep copy so callers can never mutate shared state through
// a returned plan.
func (p Plan) clone() Plan {
	c := p
	c.Features = slices.Clone(p.Features)
	return c
}

// sortPlans orders plans for display: display order ascending, ties broken
// by price ascending.
func sortPlans(plans []Plan) {
	slices.SortStableFunc(plans, func(a, b Plan) int {
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder - b.DisplayOrder
		}
		switch {
		case a.Price.Amount < b.Price.Amount:
			return -1
		case a.Price.Amount > b.Price.Amount:
			return 1
		}
		return 0
	})
}
