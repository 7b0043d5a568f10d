// Package cart manages a shopper's cart held in client-side storage.
//
// Items keep a snapshot of the product taken when it was added; later price
// or inventory changes in the catalog are not reflected.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/notify"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/storage"
	"github.com/shopspring/decimal"
)

const StorageKey = "cart"

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type Item struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Manager reads and rewrites the whole cart on every call. A nil store
// behaves as an always-empty cart whose writes are dropped, matching a
// context with no client storage.
type Manager struct {
	mu    sync.Mutex
	store storage.Store
	bus   *notify.Bus
}

func NewManager(store storage.Store, bus *notify.Bus) *Manager {
	return &Manager{store: store, bus: bus}
}

func (m *Manager) load() ([]Item, error) {
	if m.store == nil {
		return []Item{}, nil
	}
	items, ok, err := storage.Load[[]Item](m.store, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !ok || items == nil {
		return []Item{}, nil
	}
	return items, nil
}

// mutate runs fn on the current items and persists the result under the
// lock. Observers are notified after the lock is released, so they may read
// the cart from their callback. fn reports false to skip persist and notify.
func (m *Manager) mutate(fn func([]Item) ([]Item, bool)) error {
	changed, err := m.persist(fn)
	if err != nil || !changed {
		return err
	}
	m.bus.Publish(notify.TopicCart)
	return nil
}

func (m *Manager) persist(fn func([]Item) ([]Item, bool)) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.load()
	if err != nil {
		return false, err
	}

	items, changed := fn(items)
	if !changed {
		return false, nil
	}
	if m.store != nil {
		if err := storage.Save(m.store, StorageKey, items); err != nil {
			return false, fmt.Errorf("save cart: %w", err)
		}
	}
	return true, nil
}

func (m *Manager) Items() ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

// Add merges quantity into the item for product.ID, or appends a new item.
// There is no upper bound on the resulting quantity.
func (m *Manager) Add(product domain.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	return m.mutate(func(items []Item) ([]Item, bool) {
		for i := range items {
			if items[i].Product.ID == product.ID {
				items[i].Quantity += quantity
				return items, true
			}
		}
		return append(items, Item{Product: product, Quantity: quantity}), true
	})
}

// UpdateQuantity sets an absolute quantity. quantity <= 0 removes the item.
// An id not in the cart changes nothing and notifies no one.
func (m *Manager) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return m.Remove(productID)
	}

	return m.mutate(func(items []Item) ([]Item, bool) {
		for i := range items {
			if items[i].Product.ID == productID {
				items[i].Quantity = quantity
				return items, true
			}
		}
		return items, false
	})
}

// Remove drops the item for productID. Observers are notified even when
// nothing matched.
func (m *Manager) Remove(productID string) error {
	return m.mutate(func(items []Item) ([]Item, bool) {
		kept := items[:0]
		for _, it := range items {
			if it.Product.ID != productID {
				kept = append(kept, it)
			}
		}
		return kept, true
	})
}

func (m *Manager) Clear() error {
	if err := m.clear(); err != nil {
		return err
	}
	m.bus.Publish(notify.TopicCart)
	return nil
}

func (m *Manager) clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Remove(StorageKey); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
	}
	return nil
}

// Total sums price times quantity over the cart, using the prices captured
// when each item was added.
func (m *Manager) Total() (decimal.Decimal, error) {
	items, err := m.Items()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Product.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	return total, nil
}

// ItemCount is the sum of quantities, not the number of distinct products.
func (m *Manager) ItemCount() (int, error) {
	items, err := m.Items()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count, nil
}
