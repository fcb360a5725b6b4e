package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/product"
)

var ErrProductNotFound = errors.New("product not found")

// The catalog is read-only to the checkout core; the admin upsert exists so
// prices and stock can change underneath historical orders.
type Service struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]product.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Upsert(ctx context.Context, p *product.Product) error {
	p.InStock = p.Stock > 0
	return s.repo.UpsertProduct(ctx, p)
}
