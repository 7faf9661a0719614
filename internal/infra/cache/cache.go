// Package cache tracks which payment ids have already been processed.
// Processors redeliver webhooks on any hiccup; this is the line between
// "converted once" and "converted twice".
package cache

import (
	"context"
	"sync"
)

// MemoryCache is the fallback when no Redis address is configured. Dedup
// then only holds within one process lifetime, which is fine for dev.
type MemoryCache struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{seen: make(map[string]struct{})}
}

func (c *MemoryCache) MarkProcessed(ctx context.Context, paymentID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.seen[paymentID]; ok {
		return false, nil
	}
	c.seen[paymentID] = struct{}{}
	return true, nil
}

func (c *MemoryCache) Release(ctx context.Context, paymentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.seen, paymentID)
	return nil
}
