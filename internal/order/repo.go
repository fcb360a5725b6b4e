package order

import (
	"context"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
)

type OrderRepository interface {
	// CreateOrder persists the order with its item snapshots and clears the
	// owning user's cart in one transaction.
	CreateOrder(ctx context.Context, o *order.Order) error
	FindOrderByID(ctx context.Context, id string) (*order.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error)
	ListAllOrders(ctx context.Context) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status order.Status, trackingNumber *string) (*order.Order, error)
}
