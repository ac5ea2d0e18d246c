package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryItem struct {
	data     []byte
	expireAt time.Time
}

func (m memoryItem) expired(now time.Time) bool {
	return now.After(m.expireAt)
}

// MemoryCache implements Service with a size-bounded expirable LRU.
type MemoryCache struct {
	lru        *expirable.LRU[string, memoryItem]
	defaultTTL time.Duration
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:    1000,
		DefaultTTL: 5 * time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &MemoryCache{
		lru:        expirable.NewLRU[string, memoryItem](cfg.MaxSize, nil, cfg.DefaultTTL),
		defaultTTL: cfg.DefaultTTL,
	}
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	if expiration <= 0 || expiration > mc.defaultTTL {
		expiration = mc.defaultTTL
	}
	mc.lru.Add(key, memoryItem{data: data, expireAt: time.Now().Add(expiration)})
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	item, ok := mc.lru.Get(key)
	if !ok {
		return ErrCacheMiss
	}
	if item.expired(time.Now()) {
		mc.lru.Remove(key)
		return ErrCacheMiss
	}
	return decode(item.data, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		mc.lru.Remove(key)
	}
	return nil
}

func (mc *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	now := time.Now()
	for _, key := range keys {
		if item, ok := mc.lru.Peek(key); ok && !item.expired(now) {
			return true, nil
		}
	}
	return false, nil
}

// Len reports the number of live entries.
func (mc *MemoryCache) Len() int {
	return mc.lru.Len()
}

// Close drops all entries.
func (mc *MemoryCache) Close() error {
	mc.lru.Purge()
	return nil
}
