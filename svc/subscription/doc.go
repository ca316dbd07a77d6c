// Package subscription manages the paid-membership lifecycle: checkout,
// payment confirmation, cancellation, and renewal.
//
// A subscription record moves through a small state machine:
//
//	pending_payment --payment_confirmed--> active
//	pending_payment --payment_failed/abandon--> abandoned
//	active --cancel--> cancelled
//
// Expiry is not a state. An active record whose period has lapsed simply
// stops granting access; nothing rewrites it. All time-dependent questions
// are answered by the record's helpers (IsActiveAt, DaysRemainingAt) against
// an explicit instant, so they are deterministic and testable.
//
// Checkout is a two-step handshake. Subscribe reserves the account's single
// pending slot and returns a signed correlation token; Confirm presents the
// token, charges through the PaymentAuthorizer, and activates the record. A
// declined or timed-out charge abandons the pending record so the account
// can retry immediately.
//
//	svc := subscription.NewService(store, catalogSvc, authorizer, cfg)
//
//	pending, err := svc.Subscribe(ctx, accountID, "standard-monthly", cardRef)
//	...
//	sub, err := svc.Confirm(ctx, pending.ConfirmToken)
package subscription
