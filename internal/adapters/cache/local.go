package cache

import (
	"context"
	"sync"
	"time"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
)

type localEntry struct {
	value     string
	expiresAt time.Time
}

// sweepEvery is how many writes pass between full sweeps of expired entries.
const sweepEvery = 64

// LocalCache is a process-local Cache used when no Redis is configured.
// Expired entries are dropped on read and swept periodically on write.
type LocalCache struct {
	mu     sync.Mutex
	rows   map[string]localEntry
	nowFn  func() time.Time
	writes int
}

func NewLocalCache() *LocalCache {
	return &LocalCache{rows: map[string]localEntry{}, nowFn: time.Now}
}

func (c *LocalCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.rows[key]
	if !ok {
		return "", ports.ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && !c.nowFn().Before(e.expiresAt) {
		delete(c.rows, key)
		return "", ports.ErrCacheMiss
	}
	return e.value, nil
}

func (c *LocalCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.nowFn()
	c.writes++
	if c.writes%sweepEvery == 0 {
		c.sweep(now)
	}
	e := localEntry{value: value}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	c.rows[key] = e
	return nil
}

func (c *LocalCache) sweep(now time.Time) {
	for k, e := range c.rows {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(c.rows, k)
		}
	}
}

func (c *LocalCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rows)
}

func (c *LocalCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.rows, k)
	}
	return nil
}

var _ ports.Cache = (*LocalCache)(nil)
