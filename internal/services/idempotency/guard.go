// Package idempotency implements the duplicate-request guard. A caller
// supplied key is reserved in redis with an atomic test-and-set before
// any balance mutation; the same key can never drive a second mutation
// while the record lives.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard errors
var (
	ErrDuplicateRequest = errors.New("a request with this idempotency key already exists")
)

const (
	keyPrefix = "idempotency:"

	// processingMarker is stored while the request is in flight; on
	// completion it is overwritten with the transaction reference.
	processingMarker = "processing"
)

// Guard is the single de-duplication gate for every money-movement entry
// point. Contract: CheckAndReserve before any balance mutation, and every
// exit path that does not end in MarkCompleted must call MarkFailed, or
// retries stay blocked until the TTL expires.
type Guard interface {
	CheckAndReserve(ctx context.Context, key string) error
	MarkCompleted(ctx context.Context, key, transactionRef string) error
	MarkFailed(ctx context.Context, key string) error

	// Lookup returns the transaction reference stored for a completed
	// request, or empty when the key is absent or still processing.
	Lookup(ctx context.Context, key string) (string, error)
}

type guard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGuard creates a redis-backed idempotency guard.
func NewGuard(client *redis.Client, ttl time.Duration) Guard {
	if client == nil {
		panic("redis client is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &guard{client: client, ttl: ttl}
}

func (g *guard) CheckAndReserve(ctx context.Context, key string) error {
	ok, err := g.client.SetNX(ctx, keyPrefix+key, processingMarker, g.ttl).Result()
	if err != nil {
		return fmt.Errorf("idempotency check failed: %w", err)
	}
	if !ok {
		return ErrDuplicateRequest
	}
	return nil
}

func (g *guard) MarkCompleted(ctx context.Context, key, transactionRef string) error {
	if err := g.client.Set(ctx, keyPrefix+key, transactionRef, g.ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark idempotency key completed: %w", err)
	}
	return nil
}

func (g *guard) MarkFailed(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

func (g *guard) Lookup(ctx context.Context, key string) (string, error) {
	val, err := g.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup failed: %w", err)
	}
	if val == processingMarker {
		return "", nil
	}
	return val, nil
}
