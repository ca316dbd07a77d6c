package entitlement

import "errors"

var (
	// ErrInvalidToken is returned by an AccountSource for a token that does
	// not verify.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrAccountNotFound is returned by an AccountSource when the token is
	// valid but the account no longer exists.
	ErrAccountNotFound = errors.New("account not found")
)
