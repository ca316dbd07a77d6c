package entitlement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is an account's platform role. Roles are orthogonal to subscriptions:
// an admin needs no subscription, a member may or may not hold one.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Account is the slice of the auth system's account this package needs.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the account holds the admin role.
func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AccountSource resolves an access token to an account. It is the boundary
// to the auth system; implementations return ErrInvalidToken for tokens that
// do not verify and ErrAccountNotFound for verified tokens whose account no
// longer exists.
type AccountSource interface {
	GetAccount(ctx context.Context, accessToken string) (Account, error)
}
