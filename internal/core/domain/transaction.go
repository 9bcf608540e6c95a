package domain

import "time"

// LineItem is a (product, requested quantity) pair within a purchase.
type LineItem struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// Transaction records a completed purchase. It is immutable after creation;
// the only mutation anywhere is the compensating delete performed when a
// purchase fails mid-flight.
type Transaction struct {
	ID        string     `json:"id"`
	BuyerID   string     `json:"buyer_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}
