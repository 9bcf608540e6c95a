package ports

import (
	"context"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

// ProductUpdate carries the full replacement set of catalog fields for
// PUT /product/:id. Transaction references are never touched through it.
type ProductUpdate struct {
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

// ProductRepository defines persistence operations for catalog products.
//
// ReserveStock is the single source of truth for inventory deduction: it
// decrements stock by qty and records the transaction reference in one
// conditional update that only matches while stock >= qty. It returns the
// post-decrement product, domain.ErrInsufficientStock when the condition
// fails, or domain.ErrProductNotFound when the product does not exist.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error

	ReserveStock(ctx context.Context, productID string, qty int, transactionID string) (*domain.Product, error)
	// ReleaseStock undoes a successful ReserveStock (compensation path).
	ReleaseStock(ctx context.Context, productID string, qty int, transactionID string) error
}
