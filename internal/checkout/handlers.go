package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/emprendia/backend-tienda/internal/common"
	"github.com/emprendia/backend-tienda/internal/obs"
	"github.com/emprendia/backend-tienda/internal/quote"
	"github.com/emprendia/backend-tienda/internal/store"
)

// Handler exposes the buyer-facing quote endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// Quote computes and returns the order quote for a cart.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, err := h.Svc.Quote(r.Context(), chi.URLParam(r, "storeID"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.countComputed(res)
	common.JSONData(w, http.StatusOK, map[string]any{
		"quote":    res.Quote,
		"lines":    res.Lines,
		"currency": res.Store.Config.Currency,
	})
}

// OrderMessage computes the quote and returns the WhatsApp order summary.
func (h *Handler) OrderMessage(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, msg, link, err := h.Svc.OrderMessage(r.Context(), chi.URLParam(r, "storeID"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.countComputed(res)
	payload := map[string]any{
		"message": msg,
		"quote":   res.Quote,
	}
	if link != "" {
		payload["waLink"] = link
	}
	common.JSONData(w, http.StatusOK, payload)
}

// Invoice computes the quote and returns the receipt-style text summary.
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, text, err := h.Svc.Invoice(r.Context(), chi.URLParam(r, "storeID"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.countComputed(res)
	common.JSONData(w, http.StatusOK, map[string]any{
		"invoice": text,
		"quote":   res.Quote,
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Input, bool) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return Input{}, false
	}
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return Input{}, false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(in); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return Input{}, false
		}
	}
	return in, true
}

func (h *Handler) countComputed(res Result) {
	if obs.QuoteComputedTotal == nil {
		return
	}
	obs.QuoteComputedTotal.WithLabelValues(
		string(res.Store.Config.StoreType),
		strconv.Itoa(res.Sel.PlanPercent),
	).Inc()
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	countRejected(err)
	switch {
	case errors.Is(err, store.ErrStoreNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "store not found", nil)
	case errors.Is(err, store.ErrProductNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrEmptyCart):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "cart is empty", nil)
	case quote.IsValidationError(err):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	default:
		common.JSONAppError(w, err)
	}
}

func countRejected(err error) {
	if obs.QuoteRejectedTotal == nil {
		return
	}
	obs.QuoteRejectedTotal.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, store.ErrStoreNotFound), errors.Is(err, store.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, quote.ErrPlanNotOffered):
		return "plan_not_offered"
	case errors.Is(err, quote.ErrInstallmentNotOffered):
		return "installment_not_offered"
	case quote.IsValidationError(err):
		return "validation"
	default:
		return "internal"
	}
}
