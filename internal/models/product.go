package models

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryBeverages Category = "beverages"
	CategorySnacks    Category = "snacks"
	CategoryFlour     Category = "flour"
	CategoryOil       Category = "oil"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBeverages, CategorySnacks, CategoryFlour, CategoryOil:
		return true
	}
	return false
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Inventory   *int            `json:"inventory,omitempty"`
}

// CartItem builds the cart line for this product.
func (p Product) CartItem(quantity int) CartItem {
	return CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  quantity,
		Inventory: p.Inventory,
	}
}
