package ports

import "context"

// CheckoutService validates and prices line items, then creates a checkout
// session with the external payment processor. Validation is a hard
// precondition: no external call is made when any item exceeds stock.
type CheckoutService interface {
	// CreateSession returns the payment session ID.
	CreateSession(ctx context.Context, items []PurchaseItemInput) (string, error)
}
