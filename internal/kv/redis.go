package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedis(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

type RedisRecent struct {
	RDB *redis.Client
}

func (r *RedisRecent) Add(ctx context.Context, userID, query string) ([]string, error) {
	key := fmt.Sprintf(KeyRecentSearches, userID)
	pipe := r.RDB.TxPipeline()
	pipe.LRem(ctx, key, 0, query)
	pipe.LPush(ctx, key, query)
	pipe.LTrim(ctx, key, 0, MaxRecentSearches-1)
	list := pipe.LRange(ctx, key, 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return list.Val(), nil
}

func (r *RedisRecent) List(ctx context.Context, userID string) ([]string, error) {
	return r.RDB.LRange(ctx, fmt.Sprintf(KeyRecentSearches, userID), 0, MaxRecentSearches-1).Result()
}

func (r *RedisRecent) Clear(ctx context.Context, userID string) error {
	return r.RDB.Del(ctx, fmt.Sprintf(KeyRecentSearches, userID)).Err()
}

type RedisIdempotency struct {
	RDB *redis.Client
}

func (r *RedisIdempotency) Get(ctx context.Context, userID, key string) (string, bool, error) {
	v, err := r.RDB.Get(ctx, fmt.Sprintf(KeyIdemCheckout, userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisIdempotency) Set(ctx context.Context, userID, key, value string, ttl time.Duration) error {
	return r.RDB.Set(ctx, fmt.Sprintf(KeyIdemCheckout, userID, key), value, ttl).Err()
}
