// Package catalog holds the fixed Cyperus product list.
package catalog

import (
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/shopspring/decimal"
)

type Catalog struct {
	products []models.Product
	byID     map[string]models.Product
}

// New returns a catalog over products. With no arguments the built-in
// product list is used.
func New(products ...models.Product) *Catalog {
	if len(products) == 0 {
		products = defaultProducts()
	}
	c := &Catalog{
		products: products,
		byID:     make(map[string]models.Product, len(products)),
	}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) ByCategory(category models.Category) []models.Product {
	out := []models.Product{}
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) ByID(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func stock(n int) *int { return &n }

func price(naira int64) decimal.Decimal { return decimal.NewFromInt(naira) }

func defaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          "tigernut-drink-original",
			Name:        "Tigernut Drink - Original",
			Category:    models.CategoryBeverages,
			Price:       price(2500),
			Image:       "/images/products/tigernut-drink-original.jpg",
			Description: "Cold-pressed tigernut milk, no added sugar. 500ml.",
			Inventory:   stock(120),
		},
		{
			ID:          "tigernut-drink-ginger",
			Name:        "Tigernut Drink - Ginger",
			Category:    models.CategoryBeverages,
			Price:       price(2700),
			Image:       "/images/products/tigernut-drink-ginger.jpg",
			Description: "Tigernut milk blended with fresh ginger. 500ml.",
			Inventory:   stock(80),
		},
		{
			ID:          "tigernut-drink-dates",
			Name:        "Tigernut Drink - Dates & Coconut",
			Category:    models.CategoryBeverages,
			Price:       price(3000),
			Image:       "/images/products/tigernut-drink-dates.jpg",
			Description: "Tigernut milk sweetened with dates and coconut. 500ml.",
			Inventory:   stock(60),
		},
		{
			ID:          "tigernut-chips",
			Name:        "Tigernut Chips",
			Category:    models.CategorySnacks,
			Price:       price(1500),
			Image:       "/images/products/tigernut-chips.jpg",
			Description: "Crunchy roasted tigernut chips. 150g.",
			Inventory:   stock(200),
		},
		{
			ID:          "tigernut-cookies",
			Name:        "Tigernut Cookies",
			Category:    models.CategorySnacks,
			Price:       price(2000),
			Image:       "/images/products/tigernut-cookies.jpg",
			Description: "Gluten-free cookies baked with tigernut flour. 12 pieces.",
		},
		{
			ID:          "tigernut-flour-1kg",
			Name:        "Tigernut Flour 1kg",
			Category:    models.CategoryFlour,
			Price:       price(6500),
			Image:       "/images/products/tigernut-flour-1kg.jpg",
			Description: "Finely milled tigernut flour for baking and swallow.",
			Inventory:   stock(40),
		},
		{
			ID:          "tigernut-flour-500g",
			Name:        "Tigernut Flour 500g",
			Category:    models.CategoryFlour,
			Price:       price(3500),
			Image:       "/images/products/tigernut-flour-500g.jpg",
			Description: "Finely milled tigernut flour, half kilo pack.",
			Inventory:   stock(75),
		},
		{
			ID:          "tigernut-oil-250ml",
			Name:        "Cold-Pressed Tigernut Oil 250ml",
			Category:    models.CategoryOil,
			Price:       price(8000),
			Image:       "/images/products/tigernut-oil-250ml.jpg",
			Description: "Virgin tigernut oil for cooking, skin and hair.",
			Inventory:   stock(25),
		},
	}
}
