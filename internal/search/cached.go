package search

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
)

// Cached wraps a Searcher with response caching so repeated claims and
// batch runs don't re-query the external API.
type Cached struct {
	inner Searcher
	store cache.Cache
	ttl   time.Duration
}

// NewCached wraps the searcher with the given cache store
func NewCached(inner Searcher, store cache.Cache, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		store: store,
		ttl:   ttl,
	}
}

// Name returns the wrapped provider name
func (c *Cached) Name() string { return c.inner.Name() }

// Search serves from cache when possible; cache errors are ignored, the
// search result always wins.
func (c *Cached) Search(ctx context.Context, query string) ([]model.RawSearchHit, error) {
	key := cache.Key("search:" + c.inner.Name() + ":" + query)

	if data, found := c.store.Get(key); found {
		var hits []model.RawSearchHit
		if err := json.Unmarshal(data, &hits); err == nil {
			return hits, nil
		}
	}

	hits, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(hits); err == nil {
		_ = c.store.Set(key, data, c.ttl)
	}
	return hits, nil
}
