package domain

import (
	"time"
)

type Product struct {
	ID          string    `dynamodbav:"product_id"      json:"id"`
	Name        string    `dynamodbav:"name"            json:"name"`
	Slug        string    `dynamodbav:"slug"            json:"slug"`
	Description string    `dynamodbav:"description"     json:"description"`
	Price       float64   `dynamodbav:"price"           json:"price"`
	Category    string    `dynamodbav:"category"        json:"category"`
	Inventory   int       `dynamodbav:"inventory"       json:"inventory"`
	LastUpdated time.Time `dynamodbav:"last_updated"    json:"lastUpdated"`
	Image       string    `dynamodbav:"image,omitempty" json:"image,omitempty"`
}

// ProductInput carries admin-supplied fields. Create requires every field but
// Image; Update applies only the fields that are set.
type ProductInput struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1"`
	Slug        *string  `json:"slug"        validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Category    *string  `json:"category"    validate:"omitempty,min=1"`
	Inventory   *int     `json:"inventory"   validate:"omitempty,gte=0"`
	Image       *string  `json:"image"       validate:"omitempty,len=0|url"`
}

// MissingField returns the first required field absent from the input, in
// the order name, slug, description, price, category, inventory. An empty
// string counts as absent.
func (in ProductInput) MissingField() string {
	switch {
	case in.Name == nil || *in.Name == "":
		return "name"
	case in.Slug == nil || *in.Slug == "":
		return "slug"
	case in.Description == nil || *in.Description == "":
		return "description"
	case in.Price == nil:
		return "price"
	case in.Category == nil || *in.Category == "":
		return "category"
	case in.Inventory == nil:
		return "inventory"
	}
	return ""
}

// Apply copies the set fields onto p.
func (in ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Inventory != nil {
		p.Inventory = *in.Inventory
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
}

type DashboardStats struct {
	TotalProducts   int       `json:"totalProducts"`
	LowStockItems   []Product `json:"lowStockItems"`
	RecentlyUpdated []Product `json:"recentlyUpdated"`
}

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type SeedResult struct {
	Created int `json:"created"`
}
