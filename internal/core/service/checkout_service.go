package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

const checkoutCurrency = "brl"

// CheckoutService prices requested line items against the catalog and
// creates a session with the payment processor. Stock is checked per item
// before any external call; the purchase path re-enforces the same limit at
// write time, so this check can never be the only line of defence.
type CheckoutService struct {
	products ports.ProductRepository
	gateway  ports.PaymentGateway
	logger   zerolog.Logger
}

func NewCheckoutService(products ports.ProductRepository, gateway ports.PaymentGateway, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{products: products, gateway: gateway, logger: logger}
}

func (s *CheckoutService) CreateSession(ctx context.Context, items []ports.PurchaseItemInput) (string, error) {
	if len(items) == 0 {
		return "", domain.ErrInvalidPurchase
	}

	lineItems := make([]ports.PaymentLineItem, 0, len(items))
	for _, item := range items {
		if item.Qty <= 0 {
			return "", domain.ErrInvalidPurchase
		}

		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return "", fmt.Errorf("checkout: %w", err)
		}
		if item.Qty > product.Stock {
			s.logger.Info().
				Str("product_id", product.ID).
				Int("requested", item.Qty).
				Int("stock", product.Stock).
				Msg("checkout rejected: insufficient stock")
			return "", domain.ErrInsufficientStock
		}

		imageURL := domain.DefaultImageURL
		if len(product.ImageURLs) > 0 {
			imageURL = product.ImageURLs[0]
		}

		lineItems = append(lineItems, ports.PaymentLineItem{
			Name:       product.Model,
			ImageURL:   imageURL,
			UnitAmount: int64(math.Round(product.Price * 100)),
			Currency:   checkoutCurrency,
			Quantity:   item.Qty,
		})
	}

	sessionID, err := s.gateway.CreateCheckoutSession(ctx, lineItems)
	if err != nil {
		s.logger.Error().Err(err).Msg("payment processor rejected checkout session")
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info().Str("session_id", sessionID).Int("line_items", len(lineItems)).Msg("checkout session created")
	return sessionID, nil
}
