// Package cache holds the Redis-backed read-through cache for derived balances.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ledger"

// redisCmdable is the subset of redis.UniversalClient the cache uses.
type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RedisBalanceCache caches account balances under a per-tenant generation.
// Invalidation bumps the generation, so stale keys are never read again and
// simply expire.
type RedisBalanceCache struct {
	client redisCmdable
	ttl    time.Duration
}

var _ portssvc.BalanceCache = (*RedisBalanceCache)(nil)

// NewRedisBalanceCache creates a cache whose entries live for ttl.
func NewRedisBalanceCache(client redisCmdable, ttl time.Duration) *RedisBalanceCache {
	return &RedisBalanceCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func generationKey(tenantID string) string {
	return fmt.Sprintf("%s:balgen:%s", keyPrefix, tenantID)
}

func balanceKey(tenantID string, generation int64, accountID string, asOf time.Time) string {
	return fmt.Sprintf("%s:balance:%s:%d:%s:%s", keyPrefix, tenantID, generation, accountID, asOf.Format("2006-01-02"))
}

func (c *RedisBalanceCache) generation(ctx context.Context, tenantID string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(tenantID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetBalance returns the cached balance, or nil on a miss, together with the
// generation it looked under. Callers hand that generation back to SetBalance.
func (c *RedisBalanceCache) GetBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.AccountBalance, int64, error) {
	gen, err := c.generation(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}
	raw, err := c.client.Get(ctx, balanceKey(tenantID, gen, accountID, asOf)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, nil
	}
	if err != nil {
		return nil, gen, err
	}
	var balance domain.AccountBalance
	if err := json.Unmarshal(raw, &balance); err != nil {
		return nil, gen, fmt.Errorf("decode cached balance: %w", err)
	}
	return &balance, gen, nil
}

// SetBalance stores balance under generation. A balance computed before an
// invalidation lands on the superseded generation and is never read.
func (c *RedisBalanceCache) SetBalance(ctx context.Context, tenantID string, generation int64, balance domain.AccountBalance) error {
	raw, err := json.Marshal(balance)
	if err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}
	return c.client.Set(ctx, balanceKey(tenantID, generation, balance.AccountID, balance.AsOfDate), raw, c.ttl).Err()
}

// InvalidateTenant moves the tenant to a new generation.
func (c *RedisBalanceCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	return c.client.Incr(ctx, generationKey(tenantID)).Err()
}
