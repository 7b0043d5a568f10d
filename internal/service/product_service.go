package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	LowStockThreshold     = 10
	RecentWindow          = 7 * 24 * time.Hour
	RecentLimit           = 5
	DefaultRecommendLimit = 6
)

// ProductStore is the document collection the service reads and writes.
type ProductStore interface {
	FindOne(ctx context.Context, productID string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Find(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (string, error)
	Update(ctx context.Context, productID string, in domain.ProductInput, lastUpdated time.Time) error
	Delete(ctx context.Context, productID string) (bool, error)
	Count(ctx context.Context) (int, error)
	Sample(ctx context.Context, f repository.ProductFilter, size int) ([]domain.Product, error)
}

type ProductService struct {
	store     ProductStore
	publisher events.Publisher
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewProductService(store ProductStore, publisher events.Publisher, logger *zap.Logger) *ProductService {
	if publisher == nil {
		publisher = events.Discard{}
	}
	return &ProductService{
		store:     store,
		publisher: publisher,
		validate:  newValidator(),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *ProductService) checkValues(in domain.ProductInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{Field: fieldErrs[0].Field()}
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.store.Find(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, storeError("list products", err)
	}
	return products, nil
}

func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError("find by slug", err)
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.store.FindOne(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError("find by id", err)
	}
	return product, nil
}

// CreateProduct validates in before touching the store, stamps LastUpdated
// and returns the record as read back from the store.
func (s *ProductService) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if field := in.MissingField(); field != "" {
		return nil, &ValidationError{Field: field, Missing: true}
	}
	if err := s.checkValues(in); err != nil {
		return nil, err
	}

	product := &domain.Product{LastUpdated: s.now()}
	in.Apply(product)

	productID, err := s.store.Insert(ctx, product)
	if err != nil {
		s.logger.Error("Failed to save product",
			zap.String("slug", product.Slug),
			zap.Error(err))
		return nil, storeError("insert product", err)
	}

	created, err := s.store.FindOne(ctx, productID)
	if err != nil {
		s.logger.Error("Created product is not readable",
			zap.String("product_id", productID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCreationFailed, err)
	}

	s.logger.Info("Product created successfully",
		zap.String("product_id", created.ID),
		zap.String("slug", created.Slug),
		zap.Int("initial_inventory", created.Inventory))

	s.publish(ctx, events.ProductCreated, *created)
	return created, nil
}

// UpdateProduct merges the set fields of in onto the stored record and
// re-stamps LastUpdated. An unknown id yields ErrNotFound.
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, in domain.ProductInput) (*domain.Product, error) {
	if err := s.checkValues(in); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, productID, in, s.now()); err != nil {
		s.logger.Error("Failed to update product",
			zap.String("product_id", productID),
			zap.Error(err))
		return nil, storeError("update product", err)
	}

	updated, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated",
		zap.String("product_id", updated.ID),
		zap.Int("inventory", updated.Inventory))

	s.publish(ctx, events.ProductUpdated, *updated)
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) (bool, error) {
	deleted, err := s.store.Delete(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to delete product",
			zap.String("product_id", productID),
			zap.Error(err))
		return false, storeError("delete product", err)
	}

	if deleted {
		s.logger.Info("Product deleted", zap.String("product_id", productID))
		s.publish(ctx, events.ProductDeleted, domain.Product{ID: productID})
	}
	return deleted, nil
}

func (s *ProductService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, storeError("count products", err)
	}

	threshold := LowStockThreshold
	lowStock, err := s.store.Find(ctx, repository.ProductFilter{InventoryBelow: &threshold})
	if err != nil {
		return nil, storeError("find low stock", err)
	}

	cutoff := s.now().Add(-RecentWindow)
	recent, err := s.store.Find(ctx, repository.ProductFilter{UpdatedSince: &cutoff})
	if err != nil {
		return nil, storeError("find recently updated", err)
	}
	slices.SortFunc(recent, func(a, b domain.Product) int {
		return b.LastUpdated.Compare(a.LastUpdated)
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}

	return &domain.DashboardStats{
		TotalProducts:   total,
		LowStockItems:   lowStock,
		RecentlyUpdated: recent,
	}, nil
}

// RecommendProducts is a placeholder policy, not a ranking: a uniform random
// sample without replacement over products that are in stock.
func (s *ProductService) RecommendProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	inStock := 0
	products, err := s.store.Sample(ctx, repository.ProductFilter{InventoryAbove: &inStock}, limit)
	if err != nil {
		return nil, storeError("sample products", err)
	}
	return products, nil
}

func (s *ProductService) publish(ctx context.Context, t events.EventType, p domain.Product) {
	if err := s.publisher.PublishProductEvent(ctx, events.NewProductEvent(t, p, s.now())); err != nil {
		s.logger.Warn("Failed to publish product event",
			zap.String("type", string(t)),
			zap.String("product_id", p.ID),
			zap.Error(err))
	}
}
