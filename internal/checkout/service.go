package checkout

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/logger"
	ordersvc "github.com/developeragency5/InkjetProGuide-sub002/internal/order"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/payment"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/pricing"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/cart"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
)

var ErrNoSession = errors.New("checkout has not been started")

type CartReader interface {
	ListLines(ctx context.Context, userID int64) ([]cart.LineView, error)
}

type OrderPlacer interface {
	Create(ctx context.Context, userID int64, in ordersvc.CreateInput) (*order.Order, error)
}

// Service drives the checkout machine for each user session. The machine
// itself is pure; everything with a side effect (cart reads, payment
// provider calls, order creation) happens here.
type Service struct {
	store    *Store
	carts    CartReader
	orders   OrderPlacer
	provider payment.Provider
}

func NewService(store *Store, carts CartReader, orders OrderPlacer, provider payment.Provider) *Service {
	return &Service{store: store, carts: carts, orders: orders, provider: provider}
}

// Start opens a fresh checkout session. Refused for an empty cart, so step
// 1 is unreachable without line items.
func (s *Service) Start(ctx context.Context, userID int64) (Machine, error) {
	lines, err := s.carts.ListLines(ctx, userID)
	if err != nil {
		return Machine{}, err
	}
	if len(lines) == 0 {
		return Machine{}, ordersvc.ErrEmptyCart
	}
	m := New(s.provider.Available())
	s.store.Put(userID, m)
	return m, nil
}

func (s *Service) Current(userID int64) (Machine, error) {
	m, ok := s.store.Get(userID)
	if !ok {
		return Machine{}, ErrNoSession
	}
	return m, nil
}

func (s *Service) apply(userID int64, ev Event) (Machine, error) {
	m, ok := s.store.Get(userID)
	if !ok {
		return Machine{}, ErrNoSession
	}
	next, err := m.Apply(ev)
	if err != nil {
		return m, err
	}
	s.store.Put(userID, next)
	return next, nil
}

func (s *Service) SubmitShippingInfo(userID int64, info order.ShippingInfo) (Machine, error) {
	return s.apply(userID, SubmitInfo{Info: info})
}

// SelectShippingMethod picks a method and, when called on the method step,
// also advances to payment. On the payment step it only re-prices (and
// drops a stale token).
func (s *Service) SelectShippingMethod(userID int64, method pricing.Method) (Machine, error) {
	m, err := s.apply(userID, SelectMethod{Method: method})
	if err != nil {
		return m, err
	}
	if m.Step == StepShippingMethod {
		return s.apply(userID, Proceed{})
	}
	return m, nil
}

func (s *Service) SelectPaymentMethod(userID int64, method order.PaymentMethod) (Machine, error) {
	return s.apply(userID, SelectPayment{Method: method})
}

func (s *Service) Back(userID int64) (Machine, error) {
	return s.apply(userID, Back{})
}

// Quote prices the user's current cart against the session's shipping method.
func (s *Service) Quote(ctx context.Context, userID int64) (pricing.Quote, error) {
	m, ok := s.store.Get(userID)
	if !ok {
		return pricing.Quote{}, ErrNoSession
	}
	lines, err := s.carts.ListLines(ctx, userID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.Calculate(toPricingLines(lines), m.Method), nil
}

// CreateIntent requests a payment token for the current total. Only valid
// on the payment step with card selected.
func (s *Service) CreateIntent(ctx context.Context, userID int64) (Machine, error) {
	m, ok := s.store.Get(userID)
	if !ok {
		return Machine{}, ErrNoSession
	}
	if m.Step != StepPayment || m.Payment != order.PaymentCard {
		return m, ErrWrongStep
	}
	quote, err := s.Quote(ctx, userID)
	if err != nil {
		return m, err
	}
	token, err := s.provider.CreateIntent(ctx, quote.Total)
	if err != nil {
		return m, err
	}
	return s.apply(userID, TokenIssued{Token: token})
}

// Confirm places the order. On any failure the machine stays on the payment
// step with its data intact, so the user can retry; the cart is only
// cleared once creation succeeded.
func (s *Service) Confirm(ctx context.Context, userID int64) (*order.Order, error) {
	m, ok := s.store.Get(userID)
	if !ok {
		return nil, ErrNoSession
	}
	if err := m.CanConfirm(); err != nil {
		return nil, err
	}
	if m.Payment == order.PaymentCard {
		if err := s.provider.Confirm(ctx, m.PaymentToken); err != nil {
			logger.Log.Warn("payment confirmation failed", zap.Int64("user_id", userID), zap.Error(err))
			return nil, err
		}
	}
	o, err := s.orders.Create(ctx, userID, ordersvc.CreateInput{
		Info:             m.Info,
		ShippingMethod:   m.Method,
		PaymentMethod:    m.Payment,
		PaymentConfirmed: m.Payment == order.PaymentCard,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.apply(userID, Placed{}); err != nil {
		return o, err
	}
	logger.Log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Int64("user_id", userID),
		zap.String("payment_method", string(o.PaymentMethod)),
	)
	return o, nil
}

func toPricingLines(views []cart.LineView) []pricing.Line {
	lines := make([]pricing.Line, 0, len(views))
	for _, v := range views {
		lines = append(lines, pricing.Line{UnitPrice: v.UnitPrice, Quantity: v.Quantity})
	}
	return lines
}
