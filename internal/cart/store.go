package cart

import (
	"sync"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/shopspring/decimal"
)

// Store owns a single cart and applies the reducers to it.
type Store struct {
	mu   sync.RWMutex
	cart Cart
}

func NewStore(initial Cart) *Store {
	return &Store{cart: Cart{Items: clone(initial.Items)}}
}

func (s *Store) AddItem(item models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = AddItem(s.cart, item)
}

func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = RemoveItem(s.cart, productID)
}

func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = UpdateQuantity(s.cart, productID, quantity)
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = Clear(s.cart)
}

func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalItems()
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalPrice()
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Cart{Items: clone(s.cart.Items)}
}
