package embed

import (
	"context"
	"fmt"
	"time"

	"cgnews/internal/cache"
	"cgnews/internal/ratelimit"
)

// CachedEmbedder wraps a model-backed embedder with a vector cache and
// a daily request budget. Budget exhaustion surfaces as an error so the
// scorer falls through to its fallback embedder.
type CachedEmbedder struct {
	inner  Embedder
	cache  *cache.Cache
	budget *ratelimit.EmbedBudget
	ttl    time.Duration
}

func NewCachedEmbedder(inner Embedder, c *cache.Cache, budget *ratelimit.EmbedBudget, ttl time.Duration) *CachedEmbedder {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedEmbedder{inner: inner, cache: c, budget: budget, ttl: ttl}
}

func (e *CachedEmbedder) Name() string { return e.inner.Name() + "+cache" }

func (e *CachedEmbedder) Available() bool { return e.inner.Available() }

func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cache.GenerateKey(text)
	if e.cache != nil {
		if v, ok := e.cache.Get(key); ok {
			if vec, ok := v.([]float32); ok {
				if e.budget != nil {
					e.budget.RecordCacheHit()
				}
				return vec, nil
			}
		}
	}

	if e.budget != nil && !e.budget.Allow() {
		return nil, fmt.Errorf("embedding budget exhausted")
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if e.budget != nil {
		e.budget.Record()
	}
	if e.cache != nil {
		e.cache.Set(key, vec, e.ttl)
	}
	return vec, nil
}
