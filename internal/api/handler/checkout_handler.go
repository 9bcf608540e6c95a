package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gadgetlab/store-api/internal/api/metrics"
	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

// CheckoutHandler handles HTTP requests for payment session creation.
type CheckoutHandler struct {
	checkout ports.CheckoutService
}

func NewCheckoutHandler(checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Create handles POST /create-checkout-session.
//
// @Summary      Create a payment checkout session
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCheckoutSessionRequest  true  "Requested line items"
// @Success      201   {object}  createCheckoutSessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /create-checkout-session [post]
func (h *CheckoutHandler) Create(c echo.Context) error {
	if _, _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req createCheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.PurchaseItemInput, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, ports.PurchaseItemInput{ProductID: p.ProductID, Qty: p.Qtt})
	}

	sessionID, err := h.checkout.CreateSession(c.Request().Context(), items)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.StockRejectionsTotal.WithLabelValues("checkout").Inc()
		}
		metrics.CheckoutSessionsTotal.WithLabelValues("failed").Inc()
		return err
	}

	metrics.CheckoutSessionsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, createCheckoutSessionResponse{ID: sessionID})
}
