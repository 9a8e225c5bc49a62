package cache

import (
	"context"
	"sync"
	"time"

	"github.com/marstr/collection/v2"
	"go.uber.org/zap"

	"eodseries/internal/provider"
)

// entry stores a cached dataset with expiry.
type entry struct {
	expiresAt time.Time
	dataset   provider.Dataset
}

// Provider caches datasets per request key for a TTL in a bounded LRU.
// Errors from the wrapped provider are never cached.
type Provider struct {
	P        provider.Provider
	TTL      time.Duration
	MaxItems int
	Log      *zap.Logger

	once  sync.Once
	mu    sync.Mutex
	items *collection.LRUCache[string, entry]
}

func (c *Provider) Name() string { return c.P.Name() }

func (c *Provider) init() {
	c.once.Do(func() {
		capacity := c.MaxItems
		if capacity <= 0 {
			capacity = 64
		}
		c.items = collection.NewLRUCache[string, entry](uint(capacity))
		if c.Log == nil {
			c.Log = zap.NewNop()
		}
	})
}

// Fetch returns the cached dataset for req when still valid, otherwise fetches and stores it.
func (c *Provider) Fetch(ctx context.Context, req provider.Request) (provider.Dataset, error) {
	if c.TTL <= 0 {
		return c.P.Fetch(ctx, req)
	}
	c.init()

	key := req.Key()
	now := time.Now()

	c.mu.Lock()
	e, ok := c.items.Get(key)
	c.mu.Unlock()
	if ok && now.Before(e.expiresAt) {
		c.Log.Debug("returning mem cached dataset", zap.String("key", key))
		return e.dataset, nil
	}

	ds, err := c.P.Fetch(ctx, req)
	if err != nil {
		return provider.Dataset{}, err
	}

	c.mu.Lock()
	c.items.Put(key, entry{expiresAt: now.Add(c.TTL), dataset: ds})
	c.mu.Unlock()
	return ds, nil
}
