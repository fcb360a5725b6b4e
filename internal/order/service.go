package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/pricing"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/cart"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrValidation      = errors.New("missing or invalid shipping fields")
	ErrPaymentRequired = errors.New("card payment was not completed")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidStatus   = errors.New("unknown order status")
)

type CartReader interface {
	ListLines(ctx context.Context, userID int64) ([]cart.LineView, error)
}

type Service struct {
	repo         OrderRepository
	carts        CartReader
	enforceStock bool
}

func NewService(repo OrderRepository, carts CartReader, enforceStock bool) *Service {
	return &Service{repo: repo, carts: carts, enforceStock: enforceStock}
}

type CreateInput struct {
	Info             order.ShippingInfo
	ShippingMethod   pricing.Method
	PaymentMethod    order.PaymentMethod
	PaymentConfirmed bool
}

// Create derives line items and totals from the caller's current cart, never
// from the request, and freezes them on the order. Status starts at pending.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (*order.Order, error) {
	if hasMissingFields(in.Info) || !in.ShippingMethod.Valid() {
		return nil, ErrValidation
	}
	if in.PaymentMethod == order.PaymentCard && !in.PaymentConfirmed {
		return nil, ErrPaymentRequired
	}

	lines, err := s.carts.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if s.enforceStock {
		for _, l := range lines {
			if !l.InStock {
				return nil, ErrOutOfStock
			}
		}
	}

	quote := pricing.Calculate(toPricingLines(lines), in.ShippingMethod)

	o := &order.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Email:           in.Info.Email,
		CustomerName:    in.Info.CustomerName,
		ShippingAddress: in.Info.Address,
		ShippingCity:    in.Info.City,
		ShippingState:   in.Info.State,
		ShippingZip:     in.Info.Zip,
		ShippingPhone:   in.Info.Phone,
		ShippingMethod:  string(in.ShippingMethod),
		PaymentMethod:   in.PaymentMethod,
		Status:          order.StatusPending,
		Subtotal:        quote.Subtotal,
		ShippingCost:    quote.ShippingCost,
		Tax:             quote.Tax,
		Total:           quote.Total,
		CreatedAt:       time.Now().UTC(),
	}
	for _, l := range lines {
		o.Items = append(o.Items, order.Item{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Lookup fetches a single order by its opaque ID. Used both for the
// authenticated history view and the public guest tracking flow; any
// caller who knows the full ID may read the order.
func (s *Service) Lookup(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]order.Order, error) {
	return s.repo.ListAllOrders(ctx)
}

// UpdateStatus sets any value of the status enum regardless of the current
// one; the admin surface offers a fixed dropdown and the server stays
// permissive about transition order. The tracking number is written only
// when provided.
func (s *Service) UpdateStatus(ctx context.Context, id string, status order.Status, trackingNumber *string) (*order.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	o, err := s.repo.UpdateOrderStatus(ctx, id, status, trackingNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func hasMissingFields(info order.ShippingInfo) bool {
	return info.Email == "" || info.CustomerName == "" || info.Address == "" ||
		info.City == "" || info.State == "" || info.Zip == "" || info.Phone == ""
}

func toPricingLines(views []cart.LineView) []pricing.Line {
	lines := make([]pricing.Line, 0, len(views))
	for _, v := range views {
		lines = append(lines, pricing.Line{UnitPrice: v.UnitPrice, Quantity: v.Quantity})
	}
	return lines
}
