// Package entitlement answers "what can this account do right now".
//
// Entitlements are never stored. Resolve derives a Snapshot from the
// account's role and its current subscription record at an explicit instant,
// so the answer is deterministic and there is no cached privilege to go
// stale. Decide then turns a snapshot plus a route Requirement into a
// Decision: allow, or redirect to login, home, or the upgrade page.
//
// The Guard packages both into chi middleware:
//
//	guard := entitlement.NewGuard(authClient, subscriptionSvc)
//
//	r.Group(func(r chi.Router) {
//	    r.Use(guard.Middleware(entitlement.RequirePremium))
//	    r.Get("/workouts", workoutsHandler)
//	})
package entitlement
