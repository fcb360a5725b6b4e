package catalog

import (
	"context"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/product"
)

type ProductRepository interface {
	FindProductByID(ctx context.Context, id int64) (*product.Product, error)
	ListProducts(ctx context.Context) ([]product.Product, error)
	UpsertProduct(ctx context.Context, p *product.Product) error
}
