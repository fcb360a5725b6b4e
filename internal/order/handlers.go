package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/middleware"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type lookupResponse struct {
	order.Order
	// TrackingStatus uses the public tracking vocabulary (in_process/...).
	TrackingStatus string `json:"tracking_status"`
}

// Lookup is the public guest-tracking endpoint: no auth, no ownership
// check, the full order ID is the credential.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")
	o, err := h.svc.Lookup(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lookupResponse{Order: *o, TrackingStatus: o.Status.TrackingLabel()})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orders, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListAll(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

type updateStatusReq struct {
	Status         order.Status `json:"status"`
	TrackingNumber *string      `json:"tracking_number,omitempty"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := h.svc.UpdateStatus(r.Context(), id, req.Status, req.TrackingNumber)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(o)
	}
}
