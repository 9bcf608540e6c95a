package ports

import (
	"context"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

// SignupInput carries all data needed to register a new account.
type SignupInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Role        string
	Address     domain.Address
}

// AuthService defines account use-cases: registration, login, and profile
// management.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	// Login returns a signed JWT and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
