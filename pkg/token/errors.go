package token

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid token format")
	ErrSignatureMismatch = errors.New("token signature mismatch")
)
