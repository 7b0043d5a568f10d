package repository

import (
	"context"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/google/uuid"
)

// MemoryProductRepository keeps products in a map. It backs LOCAL_MODE and
// tests; iteration order is unspecified, like a document store scan.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]domain.Product),
	}
}

func (r *MemoryProductRepository) FindOne(ctx context.Context, productID string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *MemoryProductRepository) Find(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryProductRepository) Insert(ctx context.Context, product *domain.Product) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.NewString()
	r.products[product.ID] = *product
	return product.ID, nil
}

// Update is a no-op when productID does not exist.
func (r *MemoryProductRepository) Update(ctx context.Context, productID string, in domain.ProductInput, lastUpdated time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return nil
	}
	in.Apply(&p)
	p.LastUpdated = lastUpdated
	r.products[productID] = p
	return nil
}

func (r *MemoryProductRepository) Delete(ctx context.Context, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[productID]; !ok {
		return false, nil
	}
	delete(r.products, productID)
	return true, nil
}

func (r *MemoryProductRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

func (r *MemoryProductRepository) Sample(ctx context.Context, f ProductFilter, size int) ([]domain.Product, error) {
	matched, err := r.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	return sample(matched, size), nil
}
