package domain

import "errors"

// Closed error taxonomy. Every error crossing a service boundary is (or
// wraps) one of these, so the HTTP layer can map categories to status codes
// without parsing message text.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrWeakPassword        = errors.New("password must have at least 8 characters, uppercase and lowercase letters, numbers and special characters")
	ErrForbidden           = errors.New("access forbidden")
	ErrProductNotFound     = errors.New("product not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientStock   = errors.New("not enough quantity in stock")
	ErrInvalidProduct      = errors.New("product condition must be NEW or USED")
	ErrInvalidPurchase     = errors.New("purchase must contain at least one item with a positive quantity")
	ErrDuplicatePurchase   = errors.New("purchase already submitted")
)
