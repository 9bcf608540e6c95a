package ports

import (
	"context"
	"time"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

// PurchaseItemInput is one requested line item as received from the client.
type PurchaseItemInput struct {
	ProductID string
	Qty       int
}

// SubmitPurchaseInput carries a full purchase request. IdempotencyKey is
// optional; when present, a replayed key is rejected instead of producing a
// second transaction.
type SubmitPurchaseInput struct {
	BuyerID        string
	Items          []PurchaseItemInput
	IdempotencyKey string
}

// PurchaseResult is returned after a purchase commits. EmailStatus reports
// what happened to the confirmation mail ("queued"); delivery itself is
// asynchronous and best-effort.
type PurchaseResult struct {
	Transaction *domain.Transaction
	EmailStatus string
}

// TransactionLineItem is a purchase line item expanded with the current
// catalog record. Product is nil when the product has since been deleted;
// ProductID always identifies the line regardless.
type TransactionLineItem struct {
	ProductID string
	Product   *domain.Product
	Qty       int
}

// TransactionDetail is the full view returned by GetTransaction.
type TransactionDetail struct {
	ID        string
	BuyerID   string
	CreatedAt time.Time
	Items     []TransactionLineItem
}

// PurchaseService is the purchase orchestrator: it reserves stock, records
// the transaction, updates the buyer's history, and queues the confirmation
// email, compensating all committed steps when any step fails.
type PurchaseService interface {
	SubmitPurchase(ctx context.Context, input SubmitPurchaseInput) (*PurchaseResult, error)
	GetTransaction(ctx context.Context, id string) (*TransactionDetail, error)
}
