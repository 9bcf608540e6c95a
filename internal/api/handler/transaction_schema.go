package handler

import (
	"time"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

// lineItemRequest keeps the storefront's wire names: productId and qtt.
type lineItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qtt       int    `json:"qtt"       validate:"required,gt=0"`
}

type createCheckoutSessionRequest struct {
	Products []lineItemRequest `json:"products" validate:"required,min=1,dive"`
}

type createCheckoutSessionResponse struct {
	ID string `json:"id"`
}

type createTransactionRequest struct {
	BuyerID  string            `json:"buyerId"  validate:"required"`
	Products []lineItemRequest `json:"products" validate:"required,min=1,dive"`
}

type transactionResponse struct {
	ID        string            `json:"id"`
	BuyerID   string            `json:"buyerId"`
	Products  []lineItemRequest `json:"products"`
	CreatedAt time.Time         `json:"created_at"`
}

type createTransactionResponse struct {
	Result transactionResponse `json:"result"`
	Email  string              `json:"email"`
}

// Response-only types owned by the transport layer; the expanded view keeps
// the JSON contract decoupled from internal service changes.

type expandedLineItemResponse struct {
	ProductID string          `json:"productId"`
	Product   *domain.Product `json:"product"`
	Qtt       int             `json:"qtt"`
}

type getTransactionResponse struct {
	ID        string                     `json:"id"`
	BuyerID   string                     `json:"buyerId"`
	Products  []expandedLineItemResponse `json:"products"`
	CreatedAt time.Time                  `json:"created_at"`
}
