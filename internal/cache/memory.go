package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-process fallback used when no Redis URL is
// configured (single-instance deployments, tests).
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, 10*time.Minute)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.store.Set(key, value, ttl)
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) {
	for _, k := range keys {
		m.store.Delete(k)
	}
}

func (m *MemoryCache) Close() error { return nil }
