package billing

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/fitkit/core"
	"github.com/dmitrymomot/fitkit/svc/catalog"
	"github.com/dmitrymomot/fitkit/svc/subscription"
)

// httpError maps a domain error to an HTTP error with a stable key, so
// clients can tell "retry later" from "fix your request" from "pay up"
// without parsing messages.
func httpError(err error) core.HTTPError {
	switch {
	case errors.Is(err, catalog.ErrPlanNotFound),
		errors.Is(err, subscription.ErrPlanNotAvailable):
		return core.NewHTTPError(http.StatusNotFound, "plan_not_found")
	case errors.Is(err, catalog.ErrInvalidPlan):
		return core.NewHTTPError(http.StatusUnprocessableEntity, "invalid_plan")
	case errors.Is(err, catalog.ErrPlanAlreadyExists):
		return core.NewHTTPError(http.StatusConflict, "plan_already_exists")
	case errors.Is(err, catalog.ErrPlanInUse):
		return core.NewHTTPError(http.StatusConflict, "plan_in_use")
	case errors.Is(err, subscription.ErrSubscriptionAlreadyPending):
		return core.NewHTTPError(http.StatusConflict, "subscription_already_pending")
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		return core.NewHTTPError(http.StatusNotFound, "subscription_not_found")
	case errors.Is(err, subscription.ErrInvalidSubscriptionState):
		return core.NewHTTPError(http.StatusConflict, "invalid_subscription_state")
	case errors.Is(err, subscription.ErrPaymentFailed):
		return core.NewHTTPError(http.StatusPaymentRequired, "payment_failed")
	case errors.Is(err, subscription.ErrInvalidConfirmToken):
		return core.NewHTTPError(http.StatusUnprocessableEntity, "invalid_confirm_token")
	case errors.Is(err, catalog.ErrCatalogUnavailable),
		errors.Is(err, subscription.ErrStoreUnavailable):
		return core.ErrServiceUnavailable
	}
	return core.ErrInternalServerError
}
