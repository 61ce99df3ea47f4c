// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/usecase-scout/internal/cache"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

type cachedProvider struct {
	next  Provider
	cache cache.Cache
	ttl   time.Duration
}

// Cached reuses p's successful results for the same keyword for ttl.
// Errors are not cached.
func Cached(p Provider, c cache.Cache, ttl time.Duration) Provider {
	return &cachedProvider{next: p, cache: c, ttl: ttl}
}

func (c *cachedProvider) Name() string { return c.next.Name() }

func (c *cachedProvider) Search(ctx context.Context, keyword string) ([]types.DatasetRecord, error) {
	key := cache.Key(c.next.Name(), keyword)
	if data, ok := c.cache.Get(key); ok {
		var records []types.DatasetRecord
		if err := json.Unmarshal(data, &records); err == nil {
			return records, nil
		}
		c.cache.Delete(key)
	}

	records, err := c.next.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(records); err == nil {
		c.cache.Set(key, data, c.ttl)
	}
	return records, nil
}

type limitedProvider struct {
	next    Provider
	limiter *rate.Limiter
}

// RateLimited waits on limiter before each call to p.
func RateLimited(p Provider, limiter *rate.Limiter) Provider {
	return &limitedProvider{next: p, limiter: limiter}
}

// NewLimiter returns a limiter allowing requestsPerSecond with the given burst.
// A burst <= 0 defaults to 1.
func NewLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *limitedProvider) Name() string { return l.next.Name() }

func (l *limitedProvider) Search(ctx context.Context, keyword string) ([]types.DatasetRecord, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Search(ctx, keyword)
}
