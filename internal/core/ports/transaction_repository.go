package ports

import (
	"context"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

// TransactionRepository defines persistence operations for purchase records.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
	// Delete removes a transaction record. Used only to compensate a
	// purchase that failed after the record was inserted.
	Delete(ctx context.Context, id string) error
}
