package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fitkit/pkg/token"
)

// accountClaims is the payload of a signed account token.
type accountClaims struct {
	AccountID uuid.UUID `json:"aid"`
	Role      Role      `json:"rol"`
	IssuedAt  int64     `json:"iat"`
}

type tokenAccountSource struct {
	secret string
}

// NewTokenAccountSource returns an AccountSource that trusts self-contained
// signed tokens (pkg/token) instead of calling out to an auth service. Meant
// for deployments where the auth system mints these tokens at sign-in; the
// shared secret is the trust boundary.
func NewTokenAccountSource(secret string) AccountSource {
	if secret == "" {
		panic("entitlement: token secret is required")
	}
	return &tokenAccountSource{secret: secret}
}

func (s *tokenAccountSource) GetAccount(ctx context.Context, accessToken string) (Account, error) {
	claims, err := token.Parse[accountClaims](accessToken, s.secret)
	if err != nil {
		return Account{}, errors.Join(ErrInvalidToken, err)
	}
	if claims.AccountID == uuid.Nil || !claims.Role.Valid() {
		return Account{}, ErrInvalidToken
	}

	return Account{
		ID:        claims.AccountID,
		Role:      claims.Role,
		CreatedAt: time.Unix(claims.IssuedAt, 0).UTC(),
	}, nil
}

// MintAccountToken signs an access token for the account. The inverse of
// NewTokenAccountSource's parsing; exposed for the auth collaborator and for
// tests.
func MintAccountToken(account Account, secret string, issuedAt time.Time) (string, error) {
	return token.Generate(accountClaims{
		AccountID: account.ID,
		Role:      account.Role,
		IssuedAt:  issuedAt.Unix(),
	}, secret)
}
