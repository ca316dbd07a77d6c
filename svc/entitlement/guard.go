package entitlement

// Requirement declares what a route needs from the visitor.
type Requirement struct {
	Auth    bool // must be signed in
	Admin   bool // must hold the admin role (implies Auth)
	Premium bool // must have an unexpired paid subscription (implies Auth)
}

// Common requirements.
var (
	RequireAuth    = Requirement{Auth: true}
	RequireAdmin   = Requirement{Auth: true, Admin: true}
	RequirePremium = Requirement{Auth: true, Premium: true}
)

// Decision is the guard's verdict for a request.
type Decision int

const (
	// Allow lets the request through.
	Allow Decision = iota

	// RedirectLogin sends an unauthenticated visitor to sign in.
	RedirectLogin

	// RedirectHome sends a non-admin away from admin territory. Deliberately
	// not an error page: admin routes are not advertised to members.
	RedirectHome

	// RedirectUpgrade sends a non-premium member to the plan picker.
	RedirectUpgrade
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case RedirectUpgrade:
		return "redirect_upgrade"
	}
	return "unknown"
}

// Decide evaluates a requirement against a snapshot. A nil snapshot means
// the visitor is unauthenticated. The checks are ordered: authentication
// first, then role, then subscription — so an unauthenticated visitor is
// always sent to login rather than upgrade, and an admin passes premium
// gates without a subscription.
func Decide(snap *Snapshot, req Requirement) Decision {
	needsAuth := req.Auth || req.Admin || req.Premium
	if needsAuth && snap == nil {
		return RedirectLogin
	}
	if req.Admin && !snap.IsAdmin {
		return RedirectHome
	}
	if req.Premium && !snap.IsPremium && !snap.IsAdmin {
		return RedirectUpgrade
	}
	return Allow
}
