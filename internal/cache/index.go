package cache

import (
	"sync"
	"time"

	"github.com/TemirB/opsboard/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

// OrderIndex is a bounded id -> order lookup rebuilt from every order snapshot.
type OrderIndex struct {
	size int
	lru  *lru.Cache[string, domain.OrderRecord]

	mu   sync.Mutex
	from time.Time // FetchedAt of the snapshot the index was filled from
}

func NewOrderIndex(size int) (*OrderIndex, error) {
	if size < 1 {
		size = 1
	}
	c, err := lru.New[string, domain.OrderRecord](size)
	if err != nil {
		return nil, err
	}
	return &OrderIndex{
		size: size,
		lru:  c,
	}, nil
}

// Fill replaces the index contents with the first size orders of a snapshot.
func (i *OrderIndex) Fill(snapshot Entry[[]domain.OrderRecord]) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.from = snapshot.FetchedAt
	i.lru.Purge()
	orders := snapshot.Value
	for n := 0; n < len(orders) && n < i.size; n++ {
		i.Set(&orders[n])
	}
}

// Promote adds an order found by scanning the snapshot fetched at
// fetchedAt. It is a no-op once the index was refilled from a newer one.
func (i *OrderIndex) Promote(order *domain.OrderRecord, fetchedAt time.Time) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.from.Equal(fetchedAt) {
		return false
	}
	i.Set(order)
	return true
}

func (i *OrderIndex) Get(id string) (*domain.OrderRecord, bool) {
	order, ok := i.lru.Get(id)
	if !ok {
		return nil, false
	}
	return &order, true
}

func (i *OrderIndex) Set(order *domain.OrderRecord) {
	i.lru.Add(order.ID, *order)
}

func (i *OrderIndex) Len() int { return i.lru.Len() }
