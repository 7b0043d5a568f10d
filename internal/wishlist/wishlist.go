// Package wishlist keeps a set of product ids in client-side storage.
// Turning ids into products is left to the caller; see client.Wishlisted.
package wishlist

import (
	"fmt"
	"slices"
	"sync"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/notify"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/storage"
)

const StorageKey = "wishlist"

type Manager struct {
	mu    sync.Mutex
	store storage.Store
	bus   *notify.Bus
}

func NewManager(store storage.Store, bus *notify.Bus) *Manager {
	return &Manager{store: store, bus: bus}
}

func (m *Manager) load() ([]string, error) {
	if m.store == nil {
		return []string{}, nil
	}
	ids, ok, err := storage.Load[[]string](m.store, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	if !ok || ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

// IDs returns the wishlisted product ids in insertion order.
func (m *Manager) IDs() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

// Contains always reads storage, so a change made through another Manager
// sharing the store is visible immediately.
func (m *Manager) Contains(productID string) (bool, error) {
	ids, err := m.IDs()
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, productID), nil
}

// Toggle removes productID if present, adds it otherwise, persists and
// notifies. It reports whether productID is in the wishlist afterwards.
// Observers run after the lock is released and may read the wishlist.
func (m *Manager) Toggle(productID string) (bool, error) {
	present, err := m.toggle(productID)
	if err != nil {
		return false, err
	}
	m.bus.Publish(notify.TopicWishlist)
	return present, nil
}

func (m *Manager) toggle(productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, err := m.load()
	if err != nil {
		return false, err
	}

	present := false
	if slices.Contains(ids, productID) {
		ids = slices.DeleteFunc(ids, func(id string) bool { return id == productID })
	} else {
		ids = append(ids, productID)
		present = true
	}

	if m.store != nil {
		if err := storage.Save(m.store, StorageKey, ids); err != nil {
			return false, fmt.Errorf("save wishlist: %w", err)
		}
	}
	return present, nil
}
