package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Stock     int             `db:"stock" json:"stock"`
	InStock   bool            `db:"in_stock" json:"in_stock"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
