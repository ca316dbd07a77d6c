// Package catalog is the authoritative list of purchasable subscription
// plans.
//
// The catalog is read-mostly: the UI lists active plans, while administrative
// tooling creates, edits and deactivates them. Deactivation only removes a
// plan from future-offer listings; subscription records already issued
// against it keep their pinned terms. Permanent deletion is refused while any
// live subscription references the plan.
//
// Two Store implementations ship with the package: an in-memory store for
// tests and static catalogs, and a Postgres store. An optional Redis-backed
// cache absorbs listing traffic.
//
//	store := catalog.NewInMemStore(plans...)
//	svc := catalog.NewService(store,
//	    catalog.WithCache(catalog.NewRedisCache(redisClient, time.Minute)),
//	    catalog.WithReferenceChecker(subStore.ExistsLiveByPlan),
//	)
//
//	plans, err := svc.ListPlans(ctx, true)
package catalog
