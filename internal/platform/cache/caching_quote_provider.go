// Package cache provides caching decorators for provider interfaces.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"invest_backend/internal/feature/ledger/usecase"
)

// CachingQuoteProvider decorates a QuoteProvider with a short-lived
// Redis cache. It serves the portfolio read path only; transaction
// submission must keep using the undecorated provider, a committed
// price may never come from a cache.
type CachingQuoteProvider struct {
	inner     usecase.QuoteProvider
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.QuoteProvider = (*CachingQuoteProvider)(nil)

// NewCachingQuoteProvider decorates inner with Redis caching. If ttl
// is 0 or negative it defaults to 15 seconds. If namespace is empty it
// uses "quotes". A nil Redis client disables caching entirely.
func NewCachingQuoteProvider(rdb *redis.Client, ttl time.Duration, inner usecase.QuoteProvider, namespace string) *CachingQuoteProvider {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	if namespace == "" {
		namespace = "quotes"
	}
	return &CachingQuoteProvider{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetQuote returns a cached price when one is fresh, falling through to
// the inner provider otherwise. Cache writes are best effort.
func (c *CachingQuoteProvider) GetQuote(ctx context.Context, sym string) (decimal.Decimal, error) {
	if c.rdb == nil {
		return c.inner.GetQuote(ctx, sym)
	}

	key := c.cacheKey(sym)

	if raw, err := c.rdb.Get(ctx, key).Result(); err == nil && raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			return price, nil
		}
		// Corrupted entry: drop it and refetch.
		_ = c.rdb.Del(ctx, key).Err()
	}

	price, err := c.inner.GetQuote(ctx, sym)
	if err != nil {
		return decimal.Zero, err
	}

	_ = c.rdb.Set(ctx, key, price.String(), c.ttl).Err()
	return price, nil
}

func (c *CachingQuoteProvider) cacheKey(sym string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(sym))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
