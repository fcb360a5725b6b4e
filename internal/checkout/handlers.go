package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/middleware"
	ordersvc "github.com/developeragency5/InkjetProGuide-sub002/internal/order"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/payment"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/pricing"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type stateResponse struct {
	Machine
	HasPaymentToken bool          `json:"has_payment_token"`
	Quote           pricing.Quote `json:"quote"`
}

func (h *Handler) writeState(w http.ResponseWriter, r *http.Request, userID int64, m Machine) {
	quote, err := h.svc.Quote(r.Context(), userID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stateResponse{
		Machine:         m,
		HasPaymentToken: m.PaymentToken != "",
		Quote:           quote,
	})
}

// writeError maps checkout failures onto status codes. Validation errors
// carry the per-field map; provider errors carry the provider's message.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var fieldErrs FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]FieldErrors{"errors": fieldErrs})
	case errors.Is(err, ordersvc.ErrEmptyCart):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNoSession), errors.Is(err, ErrWrongStep):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrUnknownMethod), errors.Is(err, ErrUnknownPayment):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPaymentRequired), errors.Is(err, ordersvc.ErrPaymentRequired):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, ordersvc.ErrValidation), errors.Is(err, ordersvc.ErrOutOfStock):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, payment.ErrUnavailable), errors.Is(err, payment.ErrSetupFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	m, err := h.svc.Start(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, r, userID, m)
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	m, err := h.svc.Current(userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, r, userID, m)
}

func (h *Handler) SubmitShippingInfo(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	var info order.ShippingInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, err := h.svc.SubmitShippingInfo(userID, info)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, r, userID, m)
}

type selectMethodReq struct {
	Method pricing.Method `json:"shipping_method"`
}

func (h *Handler) SelectShippingMethod(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	var req selectMethodReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, err := h.svc.SelectShippingMethod(userID, req.Method)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, r, userID, m)
}

type selectPaymentReq struct {
	Method order.PaymentMethod `json:"payment_method"`
}

func (h *Handler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	var req selectPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, err := h.svc.SelectPaymentMethod(userID, req.Method)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, r, userID, m)
}

func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	m, err := h.svc.CreateIntent(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, r, userID, m)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	o, err := h.svc.Confirm(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(o)
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	m, err := h.svc.Back(userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, r, userID, m)
}
