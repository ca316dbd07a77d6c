package catalog

import "errors"

var (
	ErrInvalidPlan       = errors.New("invalid plan")
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPlanAlreadyExists = errors.New("plan already exists")
	ErrPlanInUse         = errors.New("plan is referenced by live subscriptions")

	// ErrCatalogUnavailable means the backing store could not be reached.
	// Callers must treat it as "no answer", never as "no plans exist".
	ErrCatalogUnavailable = errors.New("plan catalog unavailable")
)
