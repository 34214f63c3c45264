package store

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/emprendia/backend-tienda/internal/common"
	"github.com/emprendia/backend-tienda/internal/quote"
)

// Handler wires the store configuration service to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type storePayload struct {
	Name     string            `json:"name" validate:"required"`
	WhatsApp string            `json:"whatsapp"`
	Config   quote.StoreConfig `json:"config"`
}

type productPayload struct {
	Name     string               `json:"name" validate:"required"`
	ImageURL string               `json:"imageUrl"`
	Pricing  quote.ProductPricing `json:"pricing"`
}

// Get returns the store record.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "store service not configured", nil)
		return
	}
	rec, err := h.Svc.GetStore(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, rec)
}

// Put creates or replaces the store record under the URL's id.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "store service not configured", nil)
		return
	}
	var payload storePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		return
	}
	rec, err := h.Svc.SaveStore(r.Context(), Record{
		ID:       chi.URLParam(r, "storeID"),
		Name:     payload.Name,
		WhatsApp: payload.WhatsApp,
		Config:   payload.Config,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, rec)
}

// UpsertProduct creates or replaces a product under the URL's ids.
func (h *Handler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "store service not configured", nil)
		return
	}
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		return
	}
	product, err := h.Svc.UpsertProduct(r.Context(), chi.URLParam(r, "storeID"), Product{
		ID:       chi.URLParam(r, "productID"),
		Name:     payload.Name,
		ImageURL: payload.ImageURL,
		Pricing:  payload.Pricing,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, product)
}

// ListProducts returns the store's products with their derived prices.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "store service not configured", nil)
		return
	}
	storeID := chi.URLParam(r, "storeID")
	if _, err := h.Svc.GetStore(r.Context(), storeID); err != nil {
		h.writeError(w, err)
		return
	}
	products, err := h.Svc.ListProducts(r.Context(), storeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, products)
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "store service not configured", nil)
		return
	}
	if err := h.Svc.DeleteProduct(r.Context(), chi.URLParam(r, "storeID"), chi.URLParam(r, "productID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrStoreNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "store not found", nil)
	case errors.Is(err, ErrProductNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
	case quote.IsValidationError(err):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	default:
		common.JSONAppError(w, err)
	}
}
