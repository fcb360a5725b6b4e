package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is one of the persisted status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is expected after s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TrackingLabel maps the stored status onto the vocabulary of the public
// tracking surface, which collapses pending and processing into a single
// in_process value.
func (s Status) TrackingLabel() string {
	switch s {
	case StatusPending, StatusProcessing:
		return "in_process"
	default:
		return string(s)
	}
}

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// ShippingInfo holds the contact and address fields collected on the first
// checkout step. Field names follow the order creation endpoint payload.
type ShippingInfo struct {
	Email        string `json:"email"`
	CustomerName string `json:"customer_name"`
	Address      string `json:"shipping_address"`
	City         string `json:"shipping_city"`
	State        string `json:"shipping_state"`
	Zip          string `json:"shipping_zip"`
	Phone        string `json:"shipping_phone"`
}

type Order struct {
	ID              string          `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"-"`
	Email           string          `db:"email" json:"email"`
	CustomerName    string          `db:"customer_name" json:"customer_name"`
	ShippingAddress string          `db:"shipping_address" json:"shipping_address"`
	ShippingCity    string          `db:"shipping_city" json:"shipping_city"`
	ShippingState   string          `db:"shipping_state" json:"shipping_state"`
	ShippingZip     string          `db:"shipping_zip" json:"shipping_zip"`
	ShippingPhone   string          `db:"shipping_phone" json:"shipping_phone"`
	ShippingMethod  string          `db:"shipping_method" json:"shipping_method"`
	PaymentMethod   PaymentMethod   `db:"payment_method" json:"payment_method"`
	Status          Status          `db:"status" json:"status"`
	TrackingNumber  *string         `db:"tracking_number" json:"tracking_number,omitempty"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	ShippingCost    decimal.Decimal `db:"shipping_cost" json:"shipping_cost"`
	Tax             decimal.Decimal `db:"tax" json:"tax"`
	Total           decimal.Decimal `db:"total" json:"total"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`

	// CustomerLogin is populated only on the admin listing, joined from users.
	CustomerLogin string `db:"-" json:"customer_login,omitempty"`

	Items []Item `db:"-" json:"items,omitempty"`
}

// Item is the snapshot of a cart line taken at order creation. Name and
// price are copied from the product record so later catalog edits do not
// rewrite history.
type Item struct {
	ID          int64           `db:"id" json:"-"`
	OrderID     string          `db:"order_id" json:"-"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Quantity    int             `db:"quantity" json:"quantity"`
}
