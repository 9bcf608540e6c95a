package ports

import "context"

// PaymentLineItem is one priced entry submitted to the payment processor.
// UnitAmount is in integer minor-currency units (price × 100).
type PaymentLineItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64
	Currency   string
	Quantity   int
}

// PaymentGateway creates checkout sessions with the external payment
// processor.
type PaymentGateway interface {
	// CreateCheckoutSession returns the processor's session ID.
	CreateCheckoutSession(ctx context.Context, items []PaymentLineItem) (string, error)
}
