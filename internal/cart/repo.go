package cart

import (
	"context"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/cart"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/product"
)

type CartRepository interface {
	// AddCartLine inserts a line or increments the quantity of an existing
	// line for the same product.
	AddCartLine(ctx context.Context, userID, productID int64, quantity int) (*cart.Line, error)
	UpdateCartLineQuantity(ctx context.Context, userID, lineID int64, quantity int) error
	DeleteCartLine(ctx context.Context, userID, lineID int64) error
	ListCartLines(ctx context.Context, userID int64) ([]cart.LineView, error)
	ClearCart(ctx context.Context, userID int64) error
}

type ProductReader interface {
	FindProductByID(ctx context.Context, id int64) (*product.Product, error)
}
