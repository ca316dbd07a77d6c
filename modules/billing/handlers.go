package billing

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/fitkit/core"
	"github.com/dmitrymomot/fitkit/pkg/logger"
	"github.com/dmitrymomot/fitkit/svc/catalog"
	"github.com/dmitrymomot/fitkit/svc/entitlement"
	"github.com/dmitrymomot/fitkit/svc/subscription"
)

type handler struct {
	catalog catalog.Service
	subs    subscription.Service
	log     *slog.Logger
}

// accountID extracts the authenticated account from the guard's snapshot.
// Routes using it sit behind RequireAuth, so a missing or malformed snapshot
// is a wiring bug, reported as unauthorized rather than a panic.
func (h *handler) accountID(r *http.Request) (uuid.UUID, bool) {
	snap := entitlement.SnapshotFromContext(r.Context())
	if snap == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(snap.AccountID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	httpErr := httpError(err)
	if httpErr.Code >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), op+" failed", logger.Error(err))
	}
	core.Render(w, r, core.JSONError(httpErr))
}

func decode[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, core.ErrBadRequest
	}
	return req, nil
}

func (h *handler) listPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.catalog.ListPlans(r.Context(), true)
	if err != nil {
		h.fail(w, r, "list plans", err)
		return
	}
	core.Render(w, r, core.JSON(plans))
}

func (h *handler) getSubscription(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(r)
	if !ok {
		core.Render(w, r, core.JSONError(core.ErrUnauthorized))
		return
	}

	sub, err := h.subs.GetCurrent(r.Context(), accountID)
	if err != nil {
		h.fail(w, r, "get subscription", err)
		return
	}
	core.Render(w, r, core.JSON(sub))
}

func (h *handler) listHistory(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(r)
	if !ok {
		core.Render(w, r, core.JSONError(core.ErrUnauthorized))
		return
	}

	subs, err := h.subs.ListByAccount(r.Context(), accountID)
	if err != nil {
		h.fail(w, r, "list subscription history", err)
		return
	}
	core.Render(w, r, core.JSON(subs))
}

func (h *handler) getEntitlement(w http.ResponseWriter, r *http.Request) {
	snap := entitlement.SnapshotFromContext(r.Context())
	if snap == nil {
		core.Render(w, r, core.JSONError(core.ErrUnauthorized))
		return
	}
	core.Render(w, r, core.JSON(snap))
}

type subscribeRequest struct {
	PlanID           string `json:"plan_id"`
	PaymentMethodRef string `json:"payment_method_ref"`
}

func (r subscribeRequest) validate() error {
	verr := core.NewValidationError()
	if r.PlanID == "" {
		verr.Add("plan_id", "plan is required")
	}
	if r.PaymentMethodRef == "" {
		verr.Add("payment_method_ref", "payment method is required")
	}
	if !verr.IsEmpty() {
		return verr
	}
	return nil
}

func (h *handler) subscribe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(r)
	if !ok {
		core.Render(w, r, core.JSONError(core.ErrUnauthorized))
		return
	}

	req, err := decode[subscribeRequest](r)
	if err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}
	if err := req.validate(); err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}

	pending, err := h.subs.Subscribe(r.Context(), accountID, req.PlanID, req.PaymentMethodRef)
	if err != nil {
		h.fail(w, r, "subscribe", err)
		return
	}
	core.Render(w, r, core.JSONWithStatus(http.StatusCreated, pending))
}

type confirmRequest struct {
	ConfirmToken string `json:"confirm_token"`
}

func (h *handler) confirm(w http.ResponseWriter, r *http.Request) {
	req, err := decode[confirmRequest](r)
	if err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}
	if req.ConfirmToken == "" {
		verr := core.NewValidationError()
		verr.Add("confirm_token", "confirmation token is required")
		core.Render(w, r, core.JSONError(verr))
		return
	}

	sub, err := h.subs.Confirm(r.Context(), req.ConfirmToken)
	if err != nil {
		h.fail(w, r, "confirm subscription", err)
		return
	}
	core.Render(w, r, core.JSON(sub))
}

func (h *handler) abandon(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(r)
	if !ok {
		core.Render(w, r, core.JSONError(core.ErrUnauthorized))
		return
	}

	if err := h.subs.Abandon(r.Context(), accountID); err != nil {
		h.fail(w, r, "abandon checkout", err)
		return
	}
	core.Render(w, r, core.NoContent())
}

func (h *handler) cancel(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(r)
	if !ok {
		core.Render(w, r, core.JSONError(core.ErrUnauthorized))
		return
	}

	if err := h.subs.Cancel(r.Context(), accountID); err != nil {
		h.fail(w, r, "cancel subscription", err)
		return
	}

	sub, err := h.subs.GetCurrent(r.Context(), accountID)
	if err != nil {
		h.fail(w, r, "cancel subscription", err)
		return
	}
	core.Render(w, r, core.JSON(sub))
}

type renewRequest struct {
	PaymentMethodRef string `json:"payment_method_ref"`
}

func (h *handler) renew(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(r)
	if !ok {
		core.Render(w, r, core.JSONError(core.ErrUnauthorized))
		return
	}

	req, err := decode[renewRequest](r)
	if err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}
	if req.PaymentMethodRef == "" {
		verr := core.NewValidationError()
		verr.Add("payment_method_ref", "payment method is required")
		core.Render(w, r, core.JSONError(verr))
		return
	}

	pending, err := h.subs.Renew(r.Context(), accountID, req.PaymentMethodRef)
	if err != nil {
		h.fail(w, r, "renew subscription", err)
		return
	}
	core.Render(w, r, core.JSONWithStatus(http.StatusCreated, pending))
}

func (h *handler) adminListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.catalog.ListPlans(r.Context(), false)
	if err != nil {
		h.fail(w, r, "admin list plans", err)
		return
	}
	core.Render(w, r, core.JSON(plans))
}

func (h *handler) adminCreatePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := decode[catalog.Plan](r)
	if err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}

	if err := h.catalog.CreatePlan(r.Context(), plan); err != nil {
		h.fail(w, r, "create plan", err)
		return
	}

	created, err := h.catalog.GetPlan(r.Context(), plan.ID)
	if err != nil {
		h.fail(w, r, "create plan", err)
		return
	}
	core.Render(w, r, core.JSONWithStatus(http.StatusCreated, created))
}

func (h *handler) adminUpdatePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := decode[catalog.Plan](r)
	if err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}
	plan.ID = chi.URLParam(r, "planID")

	if err := h.catalog.UpdatePlan(r.Context(), plan); err != nil {
		h.fail(w, r, "update plan", err)
		return
	}

	updated, err := h.catalog.GetPlan(r.Context(), plan.ID)
	if err != nil {
		h.fail(w, r, "update plan", err)
		return
	}
	core.Render(w, r, core.JSON(updated))
}

func (h *handler) adminDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeletePlan(r.Context(), chi.URLParam(r, "planID")); err != nil {
		h.fail(w, r, "delete plan", err)
		return
	}
	core.Render(w, r, core.NoContent())
}

func (h *handler) adminDeactivatePlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")
	if err := h.catalog.DeactivatePlan(r.Context(), planID); err != nil {
		h.fail(w, r, "deactivate plan", err)
		return
	}

	plan, err := h.catalog.GetPlan(r.Context(), planID)
	if err != nil {
		h.fail(w, r, "deactivate plan", err)
		return
	}
	core.Render(w, r, core.JSON(plan))
}

func (h *handler) adminListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subs.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, "admin list subscriptions", err)
		return
	}
	core.Render(w, r, core.JSON(subs))
}
