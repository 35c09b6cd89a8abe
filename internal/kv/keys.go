package kv

import (
	"context"
	"time"
)

const (
	KeyRecentSearches = "biblion:recent:%s"
	KeyIdemCheckout   = "biblion:idem:checkout:%s:%s"

	MaxRecentSearches = 5
	TTLIdempotency    = 24 * time.Hour
)

// RecentSearches keeps the last distinct queries of a user, newest first.
type RecentSearches interface {
	Add(ctx context.Context, userID, query string) ([]string, error)
	List(ctx context.Context, userID string) ([]string, error)
	Clear(ctx context.Context, userID string) error
}

// IdempotencyStore maps a client supplied key to the order number it produced.
type IdempotencyStore interface {
	Get(ctx context.Context, userID, key string) (string, bool, error)
	Set(ctx context.Context, userID, key, value string, ttl time.Duration) error
}
