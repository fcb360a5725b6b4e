package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/middleware"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Every mutation responds with the full refreshed cart so the client view
// stays consistent without a second request.
func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, userID int64) {
	lines, err := h.svc.ListLines(r.Context(), userID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lines)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, r, middleware.UserIDFromContext(r.Context()))
}

type addItemReq struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.svc.AddItem(r.Context(), userID, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.writeCart(w, r, userID)
}

type updateQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	lineID, err := strconv.ParseInt(chi.URLParam(r, "lineID"), 10, 64)
	if err != nil {
		http.Error(w, "bad line id", http.StatusBadRequest)
		return
	}
	var req updateQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.UpdateQuantity(r.Context(), userID, lineID, req.Quantity); err != nil {
		if errors.Is(err, ErrLineNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.writeCart(w, r, userID)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	lineID, err := strconv.ParseInt(chi.URLParam(r, "lineID"), 10, 64)
	if err != nil {
		http.Error(w, "bad line id", http.StatusBadRequest)
		return
	}
	if err := h.svc.RemoveItem(r.Context(), userID, lineID); err != nil {
		if errors.Is(err, ErrLineNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.writeCart(w, r, userID)
}
