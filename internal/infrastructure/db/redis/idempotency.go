package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 24 * time.Hour

// PurchaseGuard provides replay protection for purchase submissions backed
// by Redis. Key format: purchase:idem:<idempotency_key>
type PurchaseGuard struct {
	client *redis.Client
}

// NewPurchaseGuard creates a PurchaseGuard wrapping the given Redis client.
func NewPurchaseGuard(client *redis.Client) *PurchaseGuard {
	return &PurchaseGuard{client: client}
}

// Acquire claims the idempotency key. It returns false when the key was
// already claimed by an earlier submission (expires after guardTTL).
func (g *PurchaseGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency acquire: %w", err)
	}
	return ok, nil
}

// Release frees a previously acquired key, allowing a retry after the
// guarded purchase failed and was compensated.
func (g *PurchaseGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (g *PurchaseGuard) key(key string) string {
	return fmt.Sprintf("purchase:idem:%s", key)
}
