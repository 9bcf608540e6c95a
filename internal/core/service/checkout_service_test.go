package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

type stubGateway struct {
	sessionID string
	err       error
	calls     int
	lastItems []ports.PaymentLineItem
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, items []ports.PaymentLineItem) (string, error) {
	g.calls++
	g.lastItems = items
	if g.err != nil {
		return "", g.err
	}
	return g.sessionID, nil
}

func TestCreateSessionPricesLineItems(t *testing.T) {
	products := newStubProductRepo(testProduct("prod-1", 5))
	gateway := &stubGateway{sessionID: "cs_test_123"}

	svc := NewCheckoutService(products, gateway, zerolog.Nop())

	id, err := svc.CreateSession(context.Background(), []ports.PurchaseItemInput{
		{ProductID: "prod-1", Qty: 2},
	})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if id != "cs_test_123" {
		t.Errorf("session id = %q, want cs_test_123", id)
	}
	if len(gateway.lastItems) != 1 {
		t.Fatalf("line items = %d, want 1", len(gateway.lastItems))
	}

	li := gateway.lastItems[0]
	if li.Name != "Pixel 9" {
		t.Errorf("name = %q, want product model", li.Name)
	}
	if li.UnitAmount != 499990 {
		t.Errorf("unit amount = %d, want 499990 (price in cents)", li.UnitAmount)
	}
	if li.Currency != "brl" {
		t.Errorf("currency = %q, want brl", li.Currency)
	}
	if li.ImageURL != "https://img.example.com/pixel.png" {
		t.Errorf("image = %q, want first product image", li.ImageURL)
	}
	if li.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", li.Quantity)
	}
}

func TestCreateSessionUsesDefaultImage(t *testing.T) {
	product := testProduct("prod-1", 5)
	product.ImageURLs = nil
	products := newStubProductRepo(product)
	gateway := &stubGateway{sessionID: "cs_test_456"}

	svc := NewCheckoutService(products, gateway, zerolog.Nop())

	if _, err := svc.CreateSession(context.Background(), []ports.PurchaseItemInput{{ProductID: "prod-1", Qty: 1}}); err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if got := gateway.lastItems[0].ImageURL; got != domain.DefaultImageURL {
		t.Errorf("image = %q, want default placeholder", got)
	}
}

func TestCreateSessionRejectsInsufficientStockBeforeGatewayCall(t *testing.T) {
	products := newStubProductRepo(testProduct("prod-1", 1))
	gateway := &stubGateway{sessionID: "cs_should_not_exist"}

	svc := NewCheckoutService(products, gateway, zerolog.Nop())

	_, err := svc.CreateSession(context.Background(), []ports.PurchaseItemInput{{ProductID: "prod-1", Qty: 3}})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if gateway.calls != 0 {
		t.Errorf("gateway called %d times, want 0", gateway.calls)
	}
}

func TestCreateSessionUnknownProduct(t *testing.T) {
	svc := NewCheckoutService(newStubProductRepo(), &stubGateway{}, zerolog.Nop())

	_, err := svc.CreateSession(context.Background(), []ports.PurchaseItemInput{{ProductID: "ghost", Qty: 1}})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestCreateSessionValidatesInput(t *testing.T) {
	svc := NewCheckoutService(newStubProductRepo(testProduct("prod-1", 5)), &stubGateway{}, zerolog.Nop())

	if _, err := svc.CreateSession(context.Background(), nil); !errors.Is(err, domain.ErrInvalidPurchase) {
		t.Errorf("empty cart: err = %v, want ErrInvalidPurchase", err)
	}
	if _, err := svc.CreateSession(context.Background(), []ports.PurchaseItemInput{{ProductID: "prod-1", Qty: 0}}); !errors.Is(err, domain.ErrInvalidPurchase) {
		t.Errorf("zero quantity: err = %v, want ErrInvalidPurchase", err)
	}
}

func TestCreateSessionPropagatesGatewayFailure(t *testing.T) {
	gateway := &stubGateway{err: errors.New("stripe unavailable")}
	svc := NewCheckoutService(newStubProductRepo(testProduct("prod-1", 5)), gateway, zerolog.Nop())

	_, err := svc.CreateSession(context.Background(), []ports.PurchaseItemInput{{ProductID: "prod-1", Qty: 1}})
	if err == nil {
		t.Fatal("expected error when the gateway fails")
	}
}
