package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStore_Lifecycle(t *testing.T) {
	s := NewStore(Cart{})

	s.AddItem(item("p1", 100, 1))
	s.AddItem(item("p1", 100, 2))
	s.AddItem(item("p2", 250, 1))
	assert.Equal(t, 4, s.TotalItems())
	assert.True(t, decimal.NewFromInt(550).Equal(s.TotalPrice()))

	s.UpdateQuantity("p2", 0)
	assert.Equal(t, 3, s.TotalItems())

	s.RemoveItem("p1")
	assert.Equal(t, 0, s.TotalItems())

	s.AddItem(item("p3", 10, 1))
	s.ClearCart()
	assert.True(t, s.Snapshot().IsEmpty())
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := NewStore(Cart{})
	s.AddItem(item("p1", 100, 1))

	snap := s.Snapshot()
	snap.Items[0].Quantity = 99

	assert.Equal(t, 1, s.TotalItems())
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := NewStore(Cart{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(item("p1", 1, 1))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.TotalItems())
	assert.Len(t, s.Snapshot().Items, 1)
}
