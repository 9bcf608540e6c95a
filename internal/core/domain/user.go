package domain

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleConsumer = "CONSUMER"
)

// Address is the postal address attached to a user account.
type Address struct {
	Street          string `json:"street"`
	Neighbourhood   string `json:"neighbourhood"`
	City            string `json:"city"`
	PostCode        string `json:"post_code"`
	StateOrProvince string `json:"state_or_province"`
	Country         string `json:"country"`
}

// User models a registered account. Transactions holds the IDs of the
// purchases made by this user; order is not meaningful.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phone_number"`
	Role         string    `json:"role"`
	Address      Address   `json:"address"`
	Transactions []string  `json:"transactions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
