package models

import "github.com/shopspring/decimal"

// CartItem is one product line in a shopping cart.
// Inventory is the optional stock cap; nil means unlimited.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Inventory *int            `json:"inventory,omitempty"`
}

// LineTotal returns price x quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
