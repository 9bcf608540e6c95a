package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

func TestCreateProductDefaultsImage(t *testing.T) {
	svc := NewCatalogService(newStubProductRepo(), zerolog.Nop())

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Category:  "phone",
		Model:     "Pixel 9",
		Brand:     "Google",
		Price:     4999.90,
		Condition: domain.ConditionNew,
		Stock:     10,
	})
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if len(created.ImageURLs) != 1 || created.ImageURLs[0] != domain.DefaultImageURL {
		t.Errorf("images = %v, want default placeholder", created.ImageURLs)
	}
}

func TestCreateProductRejectsUnknownCondition(t *testing.T) {
	svc := NewCatalogService(newStubProductRepo(), zerolog.Nop())

	_, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Model:     "Pixel 9",
		Condition: "REFURBISHED",
	})
	if !errors.Is(err, domain.ErrInvalidProduct) {
		t.Fatalf("err = %v, want ErrInvalidProduct", err)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := NewCatalogService(newStubProductRepo(), zerolog.Nop())

	_, err := svc.GetProduct(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}
