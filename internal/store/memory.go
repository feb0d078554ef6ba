package store

import (
	"context"
	"errors"
	"sync"

	"github.com/zyedidia/generic/cache"

	"github.com/samdwyer/floorgen/internal/generator"
)

// MemoryCache is a bounded LRU cache. With a next tier it reads through to
// it on a miss and writes through to it on Put.
type MemoryCache struct {
	mu   sync.Mutex
	lru  *cache.Cache[Key, *generator.Floor]
	next Cache
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates a cache holding up to capacity floors. next may be
// nil.
func NewMemoryCache(capacity int, next Cache) *MemoryCache {
	return &MemoryCache{
		lru:  cache.New[Key, *generator.Floor](max(capacity, 1)),
		next: next,
	}
}

// Get returns a floor from memory, falling back to the next tier.
func (m *MemoryCache) Get(ctx context.Context, key Key) (*generator.Floor, error) {
	m.mu.Lock()
	f, ok := m.lru.Get(key)
	m.mu.Unlock()
	if ok {
		return f, nil
	}
	if m.next == nil {
		return nil, ErrNotFound
	}

	f, err := m.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.lru.Put(key, f)
	m.mu.Unlock()
	return f, nil
}

// Put stores a floor in memory and in the next tier.
func (m *MemoryCache) Put(ctx context.Context, key Key, f *generator.Floor) error {
	m.mu.Lock()
	m.lru.Put(key, f)
	m.mu.Unlock()
	if m.next == nil {
		return nil
	}
	return m.next.Put(ctx, key, f)
}

// Delete removes a floor from both tiers.
func (m *MemoryCache) Delete(ctx context.Context, key Key) error {
	m.mu.Lock()
	m.lru.Remove(key)
	m.mu.Unlock()
	if m.next == nil {
		return nil
	}
	err := m.next.Delete(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Len returns the number of floors held in memory.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Size()
}
