package billing

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/fitkit/svc/catalog"
	"github.com/dmitrymomot/fitkit/svc/entitlement"
	"github.com/dmitrymomot/fitkit/svc/subscription"
)

// RouterOptions wires the billing module's dependencies.
type RouterOptions struct {
	Catalog       catalog.Service
	Subscriptions subscription.Service
	Guard         *entitlement.Guard

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Router assembles the billing HTTP surface.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/billing", billing.Router(billing.RouterOptions{
//	    Catalog:       catalogSvc,
//	    Subscriptions: subscriptionSvc,
//	    Guard:         guard,
//	}))
//
// Plan listing is public. Member routes sit behind the auth gate; the /admin
// subtree behind the admin gate. Premium gating of content routes is the
// caller's business — this module only manages subscriptions.
func Router(opts RouterOptions) chi.Router {
	if opts.Catalog == nil {
		panic("billing: catalog service is required")
	}
	if opts.Subscriptions == nil {
		panic("billing: subscription service is required")
	}
	if opts.Guard == nil {
		panic("billing: entitlement guard is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h := &handler{
		catalog: opts.Catalog,
		subs:    opts.Subscriptions,
		log:     opts.Logger,
	}

	r := chi.NewRouter()

	r.Get("/plans", h.listPlans)

	r.Group(func(r chi.Router) {
		r.Use(opts.Guard.Middleware(entitlement.RequireAuth))

		r.Get("/subscription", h.getSubscription)
		r.Get("/subscription/history", h.listHistory)
		r.Get("/entitlement", h.getEntitlement)
		r.Post("/subscribe", h.subscribe)
		r.Post("/subscribe/confirm", h.confirm)
		r.Post("/subscribe/abandon", h.abandon)
		r.Post("/cancel", h.cancel)
		r.Post("/renew", h.renew)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(opts.Guard.Middleware(entitlement.RequireAdmin))

		r.Get("/plans", h.adminListPlans)
		r.Post("/plans", h.adminCreatePlan)
		r.Put("/plans/{planID}", h.adminUpdatePlan)
		r.Delete("/plans/{planID}", h.adminDeletePlan)
		r.Post("/plans/{planID}/deactivate", h.adminDeactivatePlan)
		r.Get("/subscriptions", h.adminListSubscriptions)
	})

	return r
}
