package entitlement

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fitkit/svc/subscription"
)

// SubscriptionSource looks up an account's current subscription record.
// subscription.Service satisfies it.
type SubscriptionSource interface {
	GetCurrent(ctx context.Context, accountID uuid.UUID) (*subscription.Subscription, error)
}

// Redirects are the targets the guard sends rejected visitors to.
type Redirects struct {
	Login   string
	Home    string
	Upgrade string
}

// DefaultRedirects covers the usual web app layout.
var DefaultRedirects = Redirects{
	Login:   "/login",
	Home:    "/",
	Upgrade: "/upgrade",
}

// Guard builds chi middleware enforcing requirements per route group.
type Guard struct {
	accounts      AccountSource
	subscriptions SubscriptionSource
	redirects     Redirects
	now           func() time.Time
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithRedirects overrides the default redirect targets.
func WithRedirects(r Redirects) GuardOption {
	return func(g *Guard) {
		if r.Login != "" {
			g.redirects.Login = r.Login
		}
		if r.Home != "" {
			g.redirects.Home = r.Home
		}
		if r.Upgrade != "" {
			g.redirects.Upgrade = r.Upgrade
		}
	}
}

// WithGuardClock overrides the time source. Test use only.
func WithGuardClock(now func() time.Time) GuardOption {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGuard creates a Guard. Panics if either source is nil.
func NewGuard(accounts AccountSource, subscriptions SubscriptionSource, opts ...GuardOption) *Guard {
	if accounts == nil {
		panic("entitlement: AccountSource is required")
	}
	if subscriptions == nil {
		panic("entitlement: SubscriptionSource is required")
	}

	g := &Guard{
		accounts:      accounts,
		subscriptions: subscriptions,
		redirects:     DefaultRedirects,
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Middleware resolves the request's bearer token to an entitlement snapshot,
// stores it in the request context, and enforces the requirement. Rejected
// requests are redirected with 303 per Decide; allowed requests proceed with
// the snapshot available via SnapshotFromContext. A subscription lookup
// failure answers 503: unavailability must never read as "no subscription"
// and silently strip a paying member's access.
func (g *Guard) Middleware(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap, err := g.resolve(r)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}

			switch Decide(snap, req) {
			case Allow:
				if snap != nil {
					r = r.WithContext(WithSnapshot(r.Context(), snap))
				}
				next.ServeHTTP(w, r)
			case RedirectLogin:
				http.Redirect(w, r, g.redirects.Login, http.StatusSeeOther)
			case RedirectHome:
				http.Redirect(w, r, g.redirects.Home, http.StatusSeeOther)
			case RedirectUpgrade:
				http.Redirect(w, r, g.redirects.Upgrade, http.StatusSeeOther)
			}
		})
	}
}

// resolve turns the request's bearer token into a snapshot. A missing token,
// a bad token, or a vanished account yields a nil snapshot, which Decide
// treats as unauthenticated. A subscription lookup failure other than
// not-found is returned as an error: the caller must not mistake an outage
// for a free account.
func (g *Guard) resolve(r *http.Request) (*Snapshot, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, nil
	}

	account, err := g.accounts.GetAccount(r.Context(), token)
	if err != nil {
		return nil, nil
	}

	// No current record is a normal state, not an error.
	sub, err := g.subscriptions.GetCurrent(r.Context(), account.ID)
	if err != nil {
		if !errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return nil, err
		}
		sub = nil
	}

	snap := Resolve(account, sub, g.now())
	return &snap, nil
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
