// Package cart implements the shopping cart as pure reducers over a Cart
// value, plus a Store that owns one cart at a time.
package cart

import (
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/shopspring/decimal"
)

// Cart is an ordered list of lines, unique by product id.
type Cart struct {
	Items []models.CartItem `json:"items"`
}

// AddItem merges item into c. An existing line gets its quantity increased,
// otherwise the item is appended. A missing or non-positive quantity counts as 1.
// The resulting quantity is clamped to the inventory cap; a cap of 0 keeps the
// product out of the cart.
func AddItem(c Cart, item models.CartItem) Cart {
	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	items := clone(c.Items)
	if i := indexOf(items, item.ProductID); i >= 0 {
		line := items[i]
		if item.Inventory != nil {
			line.Inventory = item.Inventory
		}
		line.Quantity = clamp(line.Quantity+qty, line.Inventory)
		if line.Quantity <= 0 {
			return Cart{Items: removeAt(items, i)}
		}
		items[i] = line
		return Cart{Items: items}
	}

	item.Quantity = clamp(qty, item.Inventory)
	if item.Quantity <= 0 {
		return Cart{Items: items}
	}
	return Cart{Items: append(items, item)}
}

// RemoveItem drops the line for productID. Unknown ids are ignored.
func RemoveItem(c Cart, productID string) Cart {
	items := clone(c.Items)
	if i := indexOf(items, productID); i >= 0 {
		items = removeAt(items, i)
	}
	return Cart{Items: items}
}

// UpdateQuantity sets the quantity of an existing line. quantity <= 0 removes it.
func UpdateQuantity(c Cart, productID string, quantity int) Cart {
	items := clone(c.Items)
	i := indexOf(items, productID)
	if i < 0 {
		return Cart{Items: items}
	}
	q := clamp(quantity, items[i].Inventory)
	if q <= 0 {
		return Cart{Items: removeAt(items, i)}
	}
	items[i].Quantity = q
	return Cart{Items: items}
}

func Clear(Cart) Cart {
	return Cart{Items: []models.CartItem{}}
}

// TotalItems is the sum of quantities. Recomputed on every call.
func (c Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price x quantity. Recomputed on every call.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Find(productID string) (models.CartItem, bool) {
	if i := indexOf(c.Items, productID); i >= 0 {
		return c.Items[i], true
	}
	return models.CartItem{}, false
}

func indexOf(items []models.CartItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func clone(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items), len(items)+1)
	copy(out, items)
	return out
}

func removeAt(items []models.CartItem, i int) []models.CartItem {
	return append(items[:i], items[i+1:]...)
}

func clamp(q int, inventory *int) int {
	if inventory != nil && q > *inventory {
		return *inventory
	}
	return q
}
