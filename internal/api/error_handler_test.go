package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/transaction", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandlerDomainTaxonomy(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrInsufficientStock, http.StatusForbidden, "not enough quantity in stock"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrInvalidPurchase, http.StatusBadRequest, domain.ErrInvalidPurchase.Error()},
		{domain.ErrInvalidProduct, http.StatusBadRequest, domain.ErrInvalidProduct.Error()},
		{domain.ErrWeakPassword, http.StatusBadRequest, domain.ErrWeakPassword.Error()},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{domain.ErrTransactionNotFound, http.StatusNotFound, "transaction not found"},
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{domain.ErrDuplicatePurchase, http.StatusConflict, domain.ErrDuplicatePurchase.Error()},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	}

	for _, tc := range cases {
		code, msg := invokeErrorHandler(t, tc.err)
		if code != tc.wantCode {
			t.Errorf("%v: code = %d, want %d", tc.err, code, tc.wantCode)
		}
		if msg != tc.wantMsg {
			t.Errorf("%v: message = %q, want %q", tc.err, msg, tc.wantMsg)
		}
	}
}

func TestErrorHandlerUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("submit purchase: %w", domain.ErrUserNotFound)
	code, msg := invokeErrorHandler(t, wrapped)
	if code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", code)
	}
	if msg != "user not found" {
		t.Errorf("message = %q, want %q", msg, "user not found")
	}
}

func TestErrorHandlerPassesThroughHTTPErrors(t *testing.T) {
	code, msg := invokeErrorHandler(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", code)
	}
	if msg != "missing authorization header" {
		t.Errorf("message = %q", msg)
	}
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	code, msg := invokeErrorHandler(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Errorf("internal detail leaked: %q", msg)
	}
}
