package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Line struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	ProductID int64     `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// LineView is a cart line joined with the live product record.
// Price here is the current catalog price, not a snapshot.
type LineView struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	InStock     bool            `json:"in_stock"`
}
