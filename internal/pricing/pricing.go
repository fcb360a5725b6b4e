package pricing

import "github.com/shopspring/decimal"

// taxRate is the flat storefront tax applied to the merchandise subtotal.
var taxRate = decimal.RequireFromString("0.08")

type Method string

const (
	MethodStandard  Method = "standard"
	MethodExpress   Method = "express"
	MethodOvernight Method = "overnight"
)

var methodPrices = map[Method]decimal.Decimal{
	MethodStandard:  decimal.Zero,
	MethodExpress:   decimal.RequireFromString("19.99"),
	MethodOvernight: decimal.RequireFromString("39.99"),
}

func (m Method) Valid() bool {
	_, ok := methodPrices[m]
	return ok
}

// Price returns the flat fee for the method, zero for unknown methods.
func (m Method) Price() decimal.Decimal {
	return methodPrices[m]
}

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Quote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

// Calculate prices a cart against a shipping method. An empty cart yields
// a zero subtotal and tax; the shipping fee still follows the method.
func Calculate(lines []Line, method Method) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	shipping := method.Price()
	tax := subtotal.Mul(taxRate).Round(2)
	return Quote{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax),
	}
}
