package ports

import (
	"context"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

// UserUpdate carries the mutable profile fields for PUT /user/:id.
type UserUpdate struct {
	Name        string
	PhoneNumber string
	Address     domain.Address
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// AppendTransaction adds a transaction reference to the user's history.
	AppendTransaction(ctx context.Context, userID, transactionID string) error
	// RemoveTransaction undoes AppendTransaction (compensation path).
	RemoveTransaction(ctx context.Context, userID, transactionID string) error
}
