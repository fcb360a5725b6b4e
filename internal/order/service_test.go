package order

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/pricing"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/cart"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
)

type mockRepo struct {
	createOrderFn       func(ctx context.Context, o *order.Order) error
	findOrderByIDFn     func(ctx context.Context, id string) (*order.Order, error)
	listOrdersByUserFn  func(ctx context.Context, userID int64) ([]order.Order, error)
	listAllOrdersFn     func(ctx context.Context) ([]order.Order, error)
	updateOrderStatusFn func(ctx context.Context, id string, status order.Status, trackingNumber *string) (*order.Order, error)
}

func (m *mockRepo) CreateOrder(ctx context.Context, o *order.Order) error {
	return m.createOrderFn(ctx, o)
}
func (m *mockRepo) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	return m.findOrderByIDFn(ctx, id)
}
func (m *mockRepo) ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	return m.listOrdersByUserFn(ctx, userID)
}
func (m *mockRepo) ListAllOrders(ctx context.Context) ([]order.Order, error) {
	return m.listAllOrdersFn(ctx)
}
func (m *mockRepo) UpdateOrderStatus(ctx context.Context, id string, status order.Status, trackingNumber *string) (*order.Order, error) {
	return m.updateOrderStatusFn(ctx, id, status, trackingNumber)
}

type mockCarts struct {
	lines []cart.LineView
}

func (m *mockCarts) ListLines(context.Context, int64) ([]cart.LineView, error) {
	return m.lines, nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		Info: order.ShippingInfo{
			Email:        "ann@example.com",
			CustomerName: "Ann Lee",
			Address:      "12 Printer Way",
			City:         "Austin",
			State:        "TX",
			Zip:          "73301",
			Phone:        "512-555-0101",
		},
		ShippingMethod: pricing.MethodExpress,
		PaymentMethod:  order.PaymentCash,
	}
}

func cartLines() []cart.LineView {
	return []cart.LineView{
		{ID: 1, ProductID: 10, ProductName: "PixelJet 3000", UnitPrice: decimal.RequireFromString("100.00"), Quantity: 2, InStock: true},
	}
}

func TestCreateSnapshotsCartAndTotals(t *testing.T) {
	var created *order.Order
	repo := &mockRepo{
		createOrderFn: func(_ context.Context, o *order.Order) error {
			created = o
			return nil
		},
	}
	svc := NewService(repo, &mockCarts{lines: cartLines()}, false)

	o, err := svc.Create(context.Background(), 42, validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, int64(42), o.UserID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, "200.00", o.Subtotal.StringFixed(2))
	assert.Equal(t, "19.99", o.ShippingCost.StringFixed(2))
	assert.Equal(t, "16.00", o.Tax.StringFixed(2))
	assert.Equal(t, "235.99", o.Total.StringFixed(2))

	require.Len(t, o.Items, 1)
	assert.Equal(t, "PixelJet 3000", o.Items[0].ProductName)
	assert.Equal(t, "100.00", o.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestCreateEmptyCart(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockCarts{}, false)
	_, err := svc.Create(context.Background(), 1, validCreateInput())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateCardWithoutPayment(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockCarts{lines: cartLines()}, false)
	in := validCreateInput()
	in.PaymentMethod = order.PaymentCard
	in.PaymentConfirmed = false
	_, err := svc.Create(context.Background(), 1, in)
	assert.ErrorIs(t, err, ErrPaymentRequired)
}

func TestCreateMissingShippingFields(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockCarts{lines: cartLines()}, false)
	in := validCreateInput()
	in.Info.Zip = ""
	_, err := svc.Create(context.Background(), 1, in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateStockPolicy(t *testing.T) {
	lines := cartLines()
	lines[0].InStock = false

	t.Run("enforced", func(t *testing.T) {
		svc := NewService(&mockRepo{}, &mockCarts{lines: lines}, true)
		_, err := svc.Create(context.Background(), 1, validCreateInput())
		assert.ErrorIs(t, err, ErrOutOfStock)
	})

	t.Run("not enforced", func(t *testing.T) {
		repo := &mockRepo{createOrderFn: func(context.Context, *order.Order) error { return nil }}
		svc := NewService(repo, &mockCarts{lines: lines}, false)
		_, err := svc.Create(context.Background(), 1, validCreateInput())
		assert.NoError(t, err)
	})
}

func TestTotalIsSnapshotNotDerivation(t *testing.T) {
	carts := &mockCarts{lines: cartLines()}
	repo := &mockRepo{createOrderFn: func(context.Context, *order.Order) error { return nil }}
	svc := NewService(repo, carts, false)

	o, err := svc.Create(context.Background(), 1, validCreateInput())
	require.NoError(t, err)

	// a later catalog price edit must not touch the placed order
	carts.lines[0].UnitPrice = decimal.RequireFromString("999.99")
	assert.Equal(t, "235.99", o.Total.StringFixed(2))
	assert.Equal(t, "100.00", o.Items[0].UnitPrice.StringFixed(2))
}

func TestLookupNotFound(t *testing.T) {
	repo := &mockRepo{
		findOrderByIDFn: func(context.Context, string) (*order.Order, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewService(repo, &mockCarts{}, false)
	_, err := svc.Lookup(context.Background(), "no-such-order")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusPermissive(t *testing.T) {
	var gotStatus order.Status
	var gotTracking *string
	repo := &mockRepo{
		updateOrderStatusFn: func(_ context.Context, id string, status order.Status, trackingNumber *string) (*order.Order, error) {
			gotStatus = status
			gotTracking = trackingNumber
			return &order.Order{ID: id, Status: status}, nil
		},
	}
	svc := NewService(repo, &mockCarts{}, false)

	// any enum value is accepted regardless of the current one
	o, err := svc.UpdateStatus(context.Background(), "ord-1", order.StatusDelivered, nil)
	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, o.Status)
	assert.Nil(t, gotTracking)

	tracking := "1Z999"
	_, err = svc.UpdateStatus(context.Background(), "ord-1", order.StatusShipped, &tracking)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, gotStatus)
	require.NotNil(t, gotTracking)
	assert.Equal(t, "1Z999", *gotTracking)

	_, err = svc.UpdateStatus(context.Background(), "ord-1", order.Status("misplaced"), nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTrackingLabelMapping(t *testing.T) {
	assert.Equal(t, "in_process", order.StatusPending.TrackingLabel())
	assert.Equal(t, "in_process", order.StatusProcessing.TrackingLabel())
	assert.Equal(t, "shipped", order.StatusShipped.TrackingLabel())
	assert.Equal(t, "delivered", order.StatusDelivered.TrackingLabel())
	assert.Equal(t, "cancelled", order.StatusCancelled.TrackingLabel())
}
