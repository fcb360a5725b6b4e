package storage

import (
	"context"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/cart"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/product"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/user"
)

// UserRepository handles customer accounts.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByLogin(ctx context.Context, login string) (*user.User, error)
}

// ProductRepository handles the printer catalog.
type ProductRepository interface {
	FindProductByID(ctx context.Context, id int64) (*product.Product, error)
	ListProducts(ctx context.Context) ([]product.Product, error)
	UpsertProduct(ctx context.Context, p *product.Product) error
}

// CartRepository handles per-user cart lines.
type CartRepository interface {
	AddCartLine(ctx context.Context, userID, productID int64, quantity int) (*cart.Line, error)
	UpdateCartLineQuantity(ctx context.Context, userID, lineID int64, quantity int) error
	DeleteCartLine(ctx context.Context, userID, lineID int64) error
	ListCartLines(ctx context.Context, userID int64) ([]cart.LineView, error)
	ClearCart(ctx context.Context, userID int64) error
}

// OrderRepository handles placed orders and their item snapshots.
type OrderRepository interface {
	CreateOrder(ctx context.Context, o *order.Order) error
	FindOrderByID(ctx context.Context, id string) (*order.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error)
	ListAllOrders(ctx context.Context) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status order.Status, trackingNumber *string) (*order.Order, error)
}

// Storage объединяет все репозитории.
type Storage interface {
	UserRepository
	ProductRepository
	CartRepository
	OrderRepository

	Ping(ctx context.Context) error
	Close() error
}
