package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gadgetlab/store-api/internal/api/metrics"
	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

// TransactionHandler handles HTTP requests for the purchase flow.
type TransactionHandler struct {
	purchases ports.PurchaseService
}

func NewTransactionHandler(purchases ports.PurchaseService) *TransactionHandler {
	return &TransactionHandler{purchases: purchases}
}

// Create handles POST /transaction.
//
// @Summary      Submit a purchase
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                    false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createTransactionRequest  true   "Purchase details"
// @Success      201              {object}  createTransactionResponse
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /transaction [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	if _, _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req createTransactionRequest
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

	result, err := h.purchases.SubmitPurchase(c.Request().Context(), ports.SubmitPurchaseInput{
		BuyerID:        req.BuyerID,
		Items:          items,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		metrics.PurchaseFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.StockRejectionsTotal.WithLabelValues("purchase").Inc()
		}
		return err
	}

	metrics.PurchasesTotal.Inc()

	tx := result.Transaction
	resp := createTransactionResponse{
		Result: transactionResponse{
			ID:        tx.ID,
			BuyerID:   tx.BuyerID,
			Products:  make([]lineItemRequest, 0, len(tx.Items)),
			CreatedAt: tx.CreatedAt,
		},
		Email: result.EmailStatus,
	}
	for _, item := range tx.Items {
		resp.Result.Products = append(resp.Result.Products, lineItemRequest{ProductID: item.ProductID, Qtt: item.Qty})
	}

	return c.JSON(http.StatusCreated, resp)
}

// Get handles GET /transaction/:id.
//
// @Summary      Get a transaction with expanded product details
// @Tags         transactions
// @Produce      json
// @Param        id  path  string  true  "Transaction ID"
// @Success      200  {object}  getTransactionResponse
// @Failure      404  {object}  map[string]string
// @Router       /transaction/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	detail, err := h.purchases.GetTransaction(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := getTransactionResponse{
		ID:        detail.ID,
		BuyerID:   detail.BuyerID,
		Products:  make([]expandedLineItemResponse, 0, len(detail.Items)),
		CreatedAt: detail.CreatedAt,
	}
	for _, item := range detail.Items {
		resp.Products = append(resp.Products, expandedLineItemResponse{ProductID: item.ProductID, Product: item.Product, Qtt: item.Qty})
	}

	return c.JSON(http.StatusOK, resp)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrUserNotFound):
		return "buyer_not_found"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, domain.ErrDuplicatePurchase):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidPurchase):
		return "invalid"
	default:
		return "internal"
	}
}
