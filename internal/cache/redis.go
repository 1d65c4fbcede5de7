package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Response cache keys for list-heavy reads
const (
	LoanGroupsKey = "view:loans:groups"
)

var client *redis.Client

// Init wires the response cache onto an existing Redis client. A nil client
// degrades every cache call to a miss.
func Init(c *redis.Client) {
	client = c
}

// GetCached returns the cached bytes for a key if present
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores bytes under a key with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes cached entries
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateLoanCaches drops every loan-derived view after a write
func InvalidateLoanCaches(ctx context.Context) {
	InvalidateKeys(ctx, LoanGroupsKey)
}

// IsHealthy reports whether the cache client is connected
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
