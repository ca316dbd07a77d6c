package entitlement

import (
	"time"

	"github.com/dmitrymomot/fitkit/svc/subscription"
)

// Snapshot is an account's entitlements at one instant. It is derived, never
// stored: resolve it fresh per request and let it expire with the request.
type Snapshot struct {
	AccountID      string `json:"account_id"`
	IsAdmin        bool   `json:"is_admin"`
	IsPremium      bool   `json:"is_premium"`
	DaysRemaining  int    `json:"days_remaining"`
	IsExpiringSoon bool   `json:"is_expiring_soon"`
	IsExpired      bool   `json:"is_expired"`
}

// Resolve computes the account's entitlements from its current subscription
// record at the given instant. It is a pure function: same inputs, same
// snapshot, no side effects.
//
// Premium requires a paid record (active or cancelled) whose period has not
// lapsed; a pending checkout grants nothing. Admin comes from the role alone
// and survives any subscription state, including no subscription at all.
// A nil sub means the account has no current record.
func Resolve(account Account, sub *subscription.Subscription, now time.Time) Snapshot {
	snap := Snapshot{
		AccountID: account.ID.String(),
		IsAdmin:   account.IsAdmin(),
	}
	if sub == nil {
		return snap
	}

	snap.IsPremium = sub.IsActiveAt(now)
	snap.DaysRemaining = sub.DaysRemainingAt(now)
	snap.IsExpiringSoon = sub.IsExpiringSoonAt(now)
	snap.IsExpired = sub.IsExpiredAt(now)
	return snap
}
