package repository

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows Find and Sample. Nil fields do not filter.
type ProductFilter struct {
	InventoryBelow *int
	InventoryAbove *int
	UpdatedSince   *time.Time
}

func (f ProductFilter) match(p domain.Product) bool {
	if f.InventoryBelow != nil && p.Inventory >= *f.InventoryBelow {
		return false
	}
	if f.InventoryAbove != nil && p.Inventory <= *f.InventoryAbove {
		return false
	}
	if f.UpdatedSince != nil && p.LastUpdated.Before(*f.UpdatedSince) {
		return false
	}
	return true
}

// sample returns up to size distinct elements of items chosen uniformly at
// random. items is shuffled in place.
func sample(items []domain.Product, size int) []domain.Product {
	if size <= 0 {
		return []domain.Product{}
	}
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	if size > len(items) {
		size = len(items)
	}
	return items[:size]
}
