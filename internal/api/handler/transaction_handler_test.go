package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

type stubPurchaseService struct {
	submitFn func(ctx context.Context, input ports.SubmitPurchaseInput) (*ports.PurchaseResult, error)
	getFn    func(ctx context.Context, id string) (*ports.TransactionDetail, error)
}

func (s *stubPurchaseService) SubmitPurchase(ctx context.Context, input ports.SubmitPurchaseInput) (*ports.PurchaseResult, error) {
	return s.submitFn(ctx, input)
}

func (s *stubPurchaseService) GetTransaction(ctx context.Context, id string) (*ports.TransactionDetail, error) {
	return s.getFn(ctx, id)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context) {
	c.Set("user_id", "user-1")
	c.Set("email", "ana@example.com")
	c.Set("role", domain.RoleConsumer)
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubPurchaseService{
		submitFn: func(ctx context.Context, input ports.SubmitPurchaseInput) (*ports.PurchaseResult, error) {
			if input.BuyerID != "user-1" {
				t.Fatalf("buyer = %q, want user-1", input.BuyerID)
			}
			if len(input.Items) != 1 || input.Items[0].ProductID != "prod-1" || input.Items[0].Qty != 2 {
				t.Fatalf("unexpected items: %+v", input.Items)
			}
			if input.IdempotencyKey != "key-123" {
				t.Fatalf("idempotency key = %q, want key-123", input.IdempotencyKey)
			}
			return &ports.PurchaseResult{
				Transaction: &domain.Transaction{
					ID:        "tx-1",
					BuyerID:   input.BuyerID,
					Items:     []domain.LineItem{{ProductID: "prod-1", Qty: 2}},
					CreatedAt: created,
				},
				EmailStatus: "queued",
			}, nil
		},
	}
	handler := NewTransactionHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/transaction",
		`{"buyerId":"user-1","products":[{"productId":"prod-1","qtt":2}]}`)
	c.Request().Header.Set("Idempotency-Key", "key-123")
	authenticate(c)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "queued" {
		t.Errorf("email = %v, want queued", resp["email"])
	}
	result, ok := resp["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result object in response")
	}
	if result["id"] != "tx-1" || result["buyerId"] != "user-1" {
		t.Errorf("unexpected result payload: %+v", result)
	}
}

func TestTransactionHandler_Create_Unauthenticated(t *testing.T) {
	stub := &stubPurchaseService{
		submitFn: func(ctx context.Context, input ports.SubmitPurchaseInput) (*ports.PurchaseResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTransactionHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/transaction",
		`{"buyerId":"user-1","products":[{"productId":"prod-1","qtt":2}]}`)

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 HTTPError", err)
	}
}

func TestTransactionHandler_Create_InvalidPayload(t *testing.T) {
	stub := &stubPurchaseService{
		submitFn: func(ctx context.Context, input ports.SubmitPurchaseInput) (*ports.PurchaseResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTransactionHandler(stub)

	cases := []string{
		"not-json",
		`{"products":[{"productId":"prod-1","qtt":2}]}`, // no buyer
		`{"buyerId":"user-1","products":[]}`,            // empty cart
		`{"buyerId":"user-1","products":[{"productId":"prod-1","qtt":0}]}`,
	}
	for _, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/transaction", body)
		authenticate(c)

		err := handler.Create(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Errorf("body %q: err = %v, want 400 HTTPError", body, err)
		}
	}
}

func TestTransactionHandler_Create_PropagatesServiceError(t *testing.T) {
	stub := &stubPurchaseService{
		submitFn: func(ctx context.Context, input ports.SubmitPurchaseInput) (*ports.PurchaseResult, error) {
			return nil, domain.ErrInsufficientStock
		},
	}
	handler := NewTransactionHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/transaction",
		`{"buyerId":"user-1","products":[{"productId":"prod-1","qtt":99}]}`)
	authenticate(c)

	// The central error handler owns the status mapping; the handler just
	// returns the domain error untouched.
	if err := handler.Create(c); err != domain.ErrInsufficientStock {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
}

func TestTransactionHandler_Get_Success(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubPurchaseService{
		getFn: func(ctx context.Context, id string) (*ports.TransactionDetail, error) {
			if id != "tx-1" {
				t.Fatalf("id = %q, want tx-1", id)
			}
			return &ports.TransactionDetail{
				ID:        "tx-1",
				BuyerID:   "user-1",
				CreatedAt: created,
				Items: []ports.TransactionLineItem{
					{ProductID: "prod-1", Product: &domain.Product{ID: "prod-1", Model: "Pixel 9"}, Qty: 2},
				},
			}, nil
		},
	}
	handler := NewTransactionHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/transaction/tx-1", "")
	c.SetParamNames("id")
	c.SetParamValues("tx-1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	products, ok := resp["products"].([]any)
	if !ok || len(products) != 1 {
		t.Fatalf("expected one expanded product, got %v", resp["products"])
	}
	line, ok := products[0].(map[string]any)
	if !ok || line["productId"] != "prod-1" {
		t.Errorf("expanded line = %v, want productId prod-1", products[0])
	}
}

func TestTransactionHandler_Get_NotFound(t *testing.T) {
	stub := &stubPurchaseService{
		getFn: func(ctx context.Context, id string) (*ports.TransactionDetail, error) {
			return nil, domain.ErrTransactionNotFound
		},
	}
	handler := NewTransactionHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/transaction/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Get(c); err != domain.ErrTransactionNotFound {
		t.Fatalf("err = %v, want ErrTransactionNotFound", err)
	}
}
