package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type lruEntry struct {
	value     []byte
	expiresAt time.Time
}

// LRU is an in-process, size-bounded cache. Expired entries are dropped
// lazily on read.
type LRU struct {
	cache *lru.Cache[string, lruEntry]
	now   func() time.Time
}

// NewLRU creates an LRU holding at most size entries.
func NewLRU(size int) (*LRU, error) {
	c, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: c, now: time.Now}, nil
}

// Get retrieves a value from cache.
func (l *LRU) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := l.cache.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && !l.now().Before(e.expiresAt) {
		l.cache.Remove(key)
		return nil, ErrCacheMiss
	}
	return e.value, nil
}

// Set stores a value; ttl <= 0 means no expiry.
func (l *LRU) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := lruEntry{value: value}
	if ttl > 0 {
		e.expiresAt = l.now().Add(ttl)
	}
	l.cache.Add(key, e)
	return nil
}

// Delete removes a value from cache.
func (l *LRU) Delete(_ context.Context, key string) error {
	l.cache.Remove(key)
	return nil
}

// Purge drops every entry.
func (l *LRU) Purge() {
	l.cache.Purge()
}

// Len reports the number of cached entries, expired ones included.
func (l *LRU) Len() int {
	return l.cache.Len()
}

// Close is a no-op.
func (l *LRU) Close() error {
	return nil
}
