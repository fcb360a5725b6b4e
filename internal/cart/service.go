package cart

import (
	"context"
	"database/sql"
	"errors"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/cart"
)

var (
	ErrLineNotFound    = errors.New("cart line not found")
	ErrProductNotFound = errors.New("product not found")
)

type Service struct {
	repo     CartRepository
	products ProductReader
}

func NewService(repo CartRepository, products ProductReader) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) AddItem(ctx context.Context, userID, productID int64, quantity int) (*cart.Line, error) {
	if quantity < 1 {
		quantity = 1
	}
	if _, err := s.products.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.repo.AddCartLine(ctx, userID, productID, quantity)
}

// UpdateQuantity clamps to a minimum of 1 server-side as well; the client
// does the same before sending.
func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if err := s.repo.UpdateCartLineQuantity(ctx, userID, lineID, quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLineNotFound
		}
		return err
	}
	return nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, lineID int64) error {
	if err := s.repo.DeleteCartLine(ctx, userID, lineID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLineNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListLines(ctx context.Context, userID int64) ([]cart.LineView, error) {
	return s.repo.ListCartLines(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.repo.ClearCart(ctx, userID)
}
