// Package common holds helpers shared by every domain, most notably the
// query cache that mirrors how the dashboard cached its list queries.
package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"github.com/cleanmate-lab/admin-backend/pkg/xredis"
)

// Cache key bases. Parameterized queries append their arguments with
// ListKey, so invalidating a base wipes every variant of that query.
const (
	KeyKycSubmissions   = "kycSubmissions"
	KeyBankTransactions = "bankTransactions"
	KeyExchangeRates    = "exchangeRates"
	KeyStreakSubmission = "streakSubmission"
	KeyStreakList       = "streakSubmissions"
	KeyCleanup          = "cleanup"
	KeyCleanupList      = "cleanups"
	KeyCleanupUpdates   = "cleanupUpdates"
	KeyUser             = "user"
	KeyUserList         = "users"
	KeyRewards          = "rewards"
)

const defaultTTL = time.Minute

// ListKey builds a cache key from a base and the query arguments.
func ListKey(base string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, base)
	for _, arg := range args {
		parts = append(parts, fmt.Sprintf("%v", arg))
	}

	return strings.Join(parts, ":")
}

// QueryCache is a read-through cache over redis. Misses and storage errors
// are equivalent: the caller falls back to the source of truth and the
// error is only logged.
type QueryCache struct {
	redis xredis.Client
	ttl   time.Duration
}

func NewQueryCache(redis xredis.Client) *QueryCache {
	return &QueryCache{redis: redis, ttl: defaultTTL}
}

// Get loads a cached response into v, reporting whether it was a hit.
func (c *QueryCache) Get(ctx context.Context, key string, v any) bool {
	if c == nil || c.redis == nil {
		return false
	}

	err := c.redis.GetObj(ctx, key, v)
	if err != nil {
		if !xredis.IsNil(err) {
			xcontext.Logger(ctx).Warnf("Cannot read cache key %s: %v", key, err)
		}
		return false
	}

	return true
}

func (c *QueryCache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.redis == nil {
		return
	}

	if err := c.redis.SetObj(ctx, key, v, c.ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write cache key %s: %v", key, err)
	}
}

// Invalidate drops the given bases and every parameterized variant under
// them. It is called from transaction confirmation callbacks and after
// successful REST mutations.
func (c *QueryCache) Invalidate(ctx context.Context, bases ...string) {
	if c == nil || c.redis == nil {
		return
	}

	for _, base := range bases {
		keys, err := c.redis.Keys(ctx, base+":*")
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot list cache keys of %s: %v", base, err)
			continue
		}

		if err := c.redis.Del(ctx, append(keys, base)...); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate cache of %s: %v", base, err)
		}
	}
}
