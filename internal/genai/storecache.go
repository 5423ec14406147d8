// internal/genai/storecache.go
package genai

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"mealmate/internal/models"
)

const (
	defaultStoreCacheSize = 64
	defaultStoreCacheTTL  = 10 * time.Minute
)

type storeCacheEntry struct {
	stores   []models.StoreResult
	storedAt time.Time
}

// storeCache remembers non-empty store lookups per ~100m grid cell.
type storeCache struct {
	entries *lru.Cache[string, storeCacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

func newStoreCache(size int, ttl time.Duration) (*storeCache, error) {
	if size <= 0 {
		size = defaultStoreCacheSize
	}
	if ttl <= 0 {
		ttl = defaultStoreCacheTTL
	}
	entries, err := lru.New[string, storeCacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create store cache: %w", err)
	}
	return &storeCache{entries: entries, ttl: ttl, now: time.Now}, nil
}

func storeCacheKey(latitude, longitude float64) string {
	return fmt.Sprintf("%.3f,%.3f", latitude, longitude)
}

func (c *storeCache) get(latitude, longitude float64) ([]models.StoreResult, bool) {
	if c == nil {
		return nil, false
	}
	key := storeCacheKey(latitude, longitude)
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.entries.Remove(key)
		return nil, false
	}
	return append([]models.StoreResult{}, entry.stores...), true
}

func (c *storeCache) put(latitude, longitude float64, stores []models.StoreResult) {
	if c == nil || len(stores) == 0 {
		return
	}
	c.entries.Add(storeCacheKey(latitude, longitude), storeCacheEntry{
		stores:   append([]models.StoreResult{}, stores...),
		storedAt: c.now(),
	})
}
