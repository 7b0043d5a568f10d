package service

import (
	"context"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"go.uber.org/zap"
)

type sampleProduct struct {
	name        string
	description string
	price       float64
	category    string
	inventory   int
	image       string
}

var sampleCatalog = []sampleProduct{
	{"Premium Wireless Headphones", "High-quality wireless headphones with noise cancellation and 30-hour battery life. Perfect for music lovers and professionals.", 199.99, "Electronics", 25, "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&q=80"},
	{"Organic Cotton T-Shirt", "Comfortable and eco-friendly organic cotton t-shirt available in multiple colors. Sustainable fashion at its best.", 29.99, "Clothing", 50, "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500&q=80"},
	{"Smart Fitness Watch", "Track your health and fitness with this advanced smartwatch featuring heart rate monitoring, GPS, and water resistance.", 299.99, "Electronics", 15, "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&q=80"},
	{"Artisan Coffee Beans", "Single-origin coffee beans roasted to perfection. Rich, full-bodied flavor with notes of chocolate and caramel.", 24.99, "Food & Beverages", 100, "https://images.unsplash.com/photo-1447933601403-0c6688de566e?w=500&q=80"},
	{"Yoga Mat Pro", "Professional-grade yoga mat with superior grip and cushioning. Perfect for all types of yoga and fitness exercises.", 79.99, "Sports & Fitness", 30, "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=500&q=80"},
	{"Wireless Keyboard", "Ergonomic wireless keyboard with backlit keys and long battery life. Ideal for both office and gaming use.", 89.99, "Electronics", 40, "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=500&q=80"},
	{"Leather Wallet", "Handcrafted genuine leather wallet with RFID protection and multiple card slots. Timeless design and durability.", 59.99, "Accessories", 60, "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500&q=80"},
	{"Stainless Steel Water Bottle", "Insulated stainless steel water bottle that keeps drinks cold for 24 hours or hot for 12 hours. BPA-free and eco-friendly.", 34.99, "Home & Kitchen", 75, "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=500&q=80"},
	{"Bluetooth Speaker", "Portable Bluetooth speaker with powerful bass and 360-degree sound. Waterproof design perfect for outdoor adventures.", 79.99, "Electronics", 35, "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500&q=80"},
	{"Running Shoes", "Lightweight running shoes with advanced cushioning and breathable mesh upper. Designed for comfort and performance.", 129.99, "Sports & Fitness", 8, "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500&q=80"},
	{"Plant-Based Protein Powder", "Organic plant-based protein powder with complete amino acid profile. Vanilla flavor, perfect for smoothies and shakes.", 49.99, "Health & Wellness", 5, "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500&q=80"},
	{"Ceramic Coffee Mug", "Handmade ceramic coffee mug with unique glaze pattern. Microwave and dishwasher safe. Perfect for your morning coffee.", 19.99, "Home & Kitchen", 90, "https://images.unsplash.com/photo-1514228742587-6b1558fcf93a?w=500&q=80"},
}

// SampleProducts returns the demo catalog as create inputs. Two entries sit
// below LowStockThreshold so the dashboard has something to show.
func SampleProducts() []domain.ProductInput {
	inputs := make([]domain.ProductInput, 0, len(sampleCatalog))
	for _, p := range sampleCatalog {
		p := p
		slug := Slugify(p.name)
		inputs = append(inputs, domain.ProductInput{
			Name:        &p.name,
			Slug:        &slug,
			Description: &p.description,
			Price:       &p.price,
			Category:    &p.category,
			Inventory:   &p.inventory,
			Image:       &p.image,
		})
	}
	return inputs
}

// Seed fills an empty catalog with SampleProducts and reports how many were
// created. A non-empty catalog is left alone. Individual create failures are
// logged and skipped.
func (s *ProductService) Seed(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, storeError("count products", err)
	}

	if count > 0 {
		s.logger.Info("Catalog already contains products, skipping seed",
			zap.Int("existing", count))
		return 0, nil
	}

	created := 0
	for _, in := range SampleProducts() {
		product, err := s.CreateProduct(ctx, in)
		if err != nil {
			s.logger.Error("Failed to seed product",
				zap.String("name", *in.Name),
				zap.Error(err))
			continue
		}
		s.logger.Debug("Seeded product", zap.String("slug", product.Slug))
		created++
	}

	s.logger.Info("Catalog seeded", zap.Int("created", created))
	return created, nil
}
