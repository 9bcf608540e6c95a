package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

// CatalogService implements product management on top of the product
// repository. Stock mutation stays out of here: only the purchase
// orchestrator touches stock after creation, via ReserveStock.
type CatalogService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if !domain.ValidCondition(input.Condition) {
		return nil, domain.ErrInvalidProduct
	}

	images := input.ImageURLs
	if len(images) == 0 {
		images = []string{domain.DefaultImageURL}
	}

	product := &domain.Product{
		Category:    input.Category,
		Model:       input.Model,
		Brand:       input.Brand,
		Cost:        input.Cost,
		Price:       input.Price,
		Discount:    input.Discount,
		Description: input.Description,
		Color:       input.Color,
		Condition:   input.Condition,
		ImageURLs:   images,
		Stock:       input.Stock,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("model", input.Model).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("model", created.Model).Msg("product created")
	return created, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, upd ports.ProductUpdate) (*domain.Product, error) {
	if !domain.ValidCondition(upd.Condition) {
		return nil, domain.ErrInvalidProduct
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
