package events

import (
	"context"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/google/uuid"
)

type EventType string

const (
	ProductCreated EventType = "product.created"
	ProductUpdated EventType = "product.updated"
	ProductDeleted EventType = "product.deleted"
)

// ProductEvent announces a catalog mutation to downstream consumers.
type ProductEvent struct {
	EventID   string    `json:"event_id"`
	Type      EventType `json:"type"`
	ProductID string    `json:"product_id"`
	Slug      string    `json:"slug,omitempty"`
	Inventory int       `json:"inventory"`
	Timestamp time.Time `json:"timestamp"`
}

func NewProductEvent(t EventType, p domain.Product, at time.Time) ProductEvent {
	return ProductEvent{
		EventID:   uuid.NewString(),
		Type:      t,
		ProductID: p.ID,
		Slug:      p.Slug,
		Inventory: p.Inventory,
		Timestamp: at,
	}
}

type Publisher interface {
	PublishProductEvent(ctx context.Context, event ProductEvent) error
}

// Discard drops every event. Used when no brokers are configured.
type Discard struct{}

func (Discard) PublishProductEvent(context.Context, ProductEvent) error { return nil }
