package ports

import (
	"context"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

// CreateProductInput carries all data needed to add a catalog entry.
type CreateProductInput struct {
	Category    string
	Model       string
	Brand       string
	Cost        float64
	Price       float64
	Discount    float64
	Description string
	Color       string
	Condition   domain.Condition
	ImageURLs   []string
	Stock       int
}

// CatalogService defines product management use-cases.
type CatalogService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
