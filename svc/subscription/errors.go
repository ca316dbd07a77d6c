package subscription

import "errors"

var (
	// ErrSubscriptionNotFound is returned when no record matches the lookup.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriptionAlreadyPending is returned when an account already has a
	// checkout in flight. The pending slot must be confirmed or abandoned
	// before a new one opens.
	ErrSubscriptionAlreadyPending = errors.New("subscription already pending payment")

	// ErrInvalidSubscriptionState is returned when the requested operation is
	// not a legal transition from the record's current status.
	ErrInvalidSubscriptionState = errors.New("invalid subscription state")

	// ErrPaymentFailed is returned by Confirm when the payment authorizer
	// declines or does not answer within the configured timeout.
	ErrPaymentFailed = errors.New("payment failed")

	// ErrInvalidConfirmToken is returned by Confirm for a correlation token
	// that is malformed, tampered with, or references a different account.
	ErrInvalidConfirmToken = errors.New("invalid confirmation token")

	// ErrPlanNotAvailable is returned by Subscribe when the requested plan
	// does not exist or is no longer offered.
	ErrPlanNotAvailable = errors.New("plan not available for subscription")

	// ErrConcurrentUpdate is returned by Store.Update when the record changed
	// since it was read. The caller lost a write race and must re-read before
	// retrying.
	ErrConcurrentUpdate = errors.New("subscription modified concurrently")

	// ErrStoreUnavailable wraps storage failures so callers can distinguish
	// infrastructure trouble from business rejections.
	ErrStoreUnavailable = errors.New("subscription store unavailable")
)
