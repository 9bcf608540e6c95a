package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

// IdempotencyGuard abstracts the replay-protection store (Redis). Acquire
// returns false when the key has already been used. Release frees a claimed
// key so a failed purchase does not poison later retries with the same key.
type IdempotencyGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// EmailStatusQueued is reported when the confirmation mail was handed to the
// dispatcher. Delivery happens asynchronously and never fails the purchase.
const EmailStatusQueued = "queued"

// PurchaseService orchestrates the purchase flow. The write sequence is:
//
//  1. insert the transaction record
//  2. per line item, decrement-if-sufficient on the product (atomic)
//  3. append the transaction reference to the buyer
//  4. enqueue the confirmation email
//
// MongoDB gives no cross-document atomicity here, so any failure after step 1
// triggers compensation: every reserved item is released and the transaction
// record is deleted before the error is surfaced. The conditional decrement
// in step 2 is the single stock authority; two concurrent purchases can never
// jointly drive stock negative.
type PurchaseService struct {
	transactions ports.TransactionRepository
	products     ports.ProductRepository
	users        ports.UserRepository
	mail         ports.MailQueue
	guard        IdempotencyGuard
	logger       zerolog.Logger
}

func NewPurchaseService(
	transactions ports.TransactionRepository,
	products ports.ProductRepository,
	users ports.UserRepository,
	mail ports.MailQueue,
	guard IdempotencyGuard,
	logger zerolog.Logger,
) *PurchaseService {
	return &PurchaseService{
		transactions: transactions,
		products:     products,
		users:        users,
		mail:         mail,
		guard:        guard,
		logger:       logger,
	}
}

func (s *PurchaseService) SubmitPurchase(ctx context.Context, input ports.SubmitPurchaseInput) (*ports.PurchaseResult, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrInvalidPurchase
	}
	for _, item := range input.Items {
		if item.Qty <= 0 || item.ProductID == "" {
			return nil, domain.ErrInvalidPurchase
		}
	}

	buyer, err := s.users.FindByID(ctx, input.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("submit purchase: %w", err)
	}

	// claimedKey is non-empty only after a successful Acquire; every failure
	// path below must release it so a corrected retry with the same key is
	// not rejected as a replay.
	var claimedKey string
	if input.IdempotencyKey != "" {
		fresh, err := s.guard.Acquire(ctx, input.IdempotencyKey)
		if err != nil {
			// The guard is protective, not load-bearing; keep going.
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency check failed, processing anyway")
		} else if !fresh {
			return nil, domain.ErrDuplicatePurchase
		} else {
			claimedKey = input.IdempotencyKey
		}
	}

	items := make([]domain.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.LineItem{ProductID: item.ProductID, Qty: item.Qty})
	}

	tx, err := s.transactions.Create(ctx, &domain.Transaction{
		BuyerID:   buyer.ID,
		Items:     items,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.releaseKey(ctx, claimedKey)
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	// Reserve stock item by item. Each reservation is atomic on its product;
	// the first failure rolls back everything reserved so far.
	reserved := make([]domain.LineItem, 0, len(items))
	purchased := make([]*domain.Product, 0, len(items))
	for _, item := range items {
		product, err := s.products.ReserveStock(ctx, item.ProductID, item.Qty, tx.ID)
		if err != nil {
			s.compensate(ctx, tx, reserved, false)
			s.releaseKey(ctx, claimedKey)
			if errors.Is(err, domain.ErrInsufficientStock) {
				s.logger.Info().
					Str("transaction_id", tx.ID).
					Str("product_id", item.ProductID).
					Int("requested", item.Qty).
					Msg("purchase rejected: insufficient stock")
				return nil, domain.ErrInsufficientStock
			}
			return nil, fmt.Errorf("reserve stock for %s: %w", item.ProductID, err)
		}
		reserved = append(reserved, item)
		purchased = append(purchased, product)
	}

	if err := s.users.AppendTransaction(ctx, buyer.ID, tx.ID); err != nil {
		s.compensate(ctx, tx, reserved, false)
		s.releaseKey(ctx, claimedKey)
		return nil, fmt.Errorf("update buyer history: %w", err)
	}

	body, err := confirmationBody(purchased)
	if err != nil {
		// Rendering cannot realistically fail with a static template; treat
		// it like a delivery failure rather than unwinding the purchase.
		s.logger.Error().Err(err).Str("transaction_id", tx.ID).Msg("failed to render confirmation email")
	} else {
		s.mail.Enqueue(ports.MailJob{
			To:       buyer.Email,
			Subject:  confirmationSubject,
			HTMLBody: body,
		})
	}

	s.logger.Info().
		Str("transaction_id", tx.ID).
		Str("buyer_id", buyer.ID).
		Int("line_items", len(items)).
		Msg("purchase committed")

	return &ports.PurchaseResult{Transaction: tx, EmailStatus: EmailStatusQueued}, nil
}

// releaseKey frees an acquired idempotency key after a failed purchase. A
// release failure is logged only: the key then expires with its TTL and a
// retry within that window gets a spurious 409, which is the pre-existing
// behavior of an unreachable guard.
func (s *PurchaseService) releaseKey(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.guard.Release(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

// compensate unwinds a partially committed purchase: releases every reserved
// line item, detaches the transaction from the buyer when it was attached,
// and deletes the transaction record. Compensation failures are logged; they
// leave the store inconsistent and need operator attention.
func (s *PurchaseService) compensate(ctx context.Context, tx *domain.Transaction, reserved []domain.LineItem, buyerUpdated bool) {
	for _, item := range reserved {
		if err := s.products.ReleaseStock(ctx, item.ProductID, item.Qty, tx.ID); err != nil {
			s.logger.Error().Err(err).
				Str("transaction_id", tx.ID).
				Str("product_id", item.ProductID).
				Int("qty", item.Qty).
				Msg("compensation failed: stock not released")
		}
	}
	if buyerUpdated {
		if err := s.users.RemoveTransaction(ctx, tx.BuyerID, tx.ID); err != nil {
			s.logger.Error().Err(err).
				Str("transaction_id", tx.ID).
				Str("buyer_id", tx.BuyerID).
				Msg("compensation failed: buyer history not restored")
		}
	}
	if err := s.transactions.Delete(ctx, tx.ID); err != nil {
		s.logger.Error().Err(err).
			Str("transaction_id", tx.ID).
			Msg("compensation failed: transaction record not deleted")
	}
}

func (s *PurchaseService) GetTransaction(ctx context.Context, id string) (*ports.TransactionDetail, error) {
	tx, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.TransactionDetail{
		ID:        tx.ID,
		BuyerID:   tx.BuyerID,
		CreatedAt: tx.CreatedAt,
		Items:     make([]ports.TransactionLineItem, 0, len(tx.Items)),
	}

	for _, item := range tx.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				// Product deleted since purchase; keep the line item.
				detail.Items = append(detail.Items, ports.TransactionLineItem{ProductID: item.ProductID, Qty: item.Qty})
				continue
			}
			return nil, fmt.Errorf("expand transaction %s: %w", id, err)
		}
		detail.Items = append(detail.Items, ports.TransactionLineItem{ProductID: item.ProductID, Product: product, Qty: item.Qty})
	}

	return detail, nil
}
