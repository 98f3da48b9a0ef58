// Package cache stores resolved answers keyed by record version and query.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// Client defines the cache interface.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key derives a cache key from the record version and the normalized query.
// A new record version never hits entries written for an older one.
func Key(version, normalized string) string {
	sum := sha256.Sum256([]byte(version + "\x00" + normalized))
	return "answer:" + hex.EncodeToString(sum[:16])
}

// Tiered reads from a local cache first and falls back to a shared one,
// populating the local tier on a shared hit.
type Tiered struct {
	local    Client
	shared   Client
	localTTL time.Duration
}

// NewTiered layers local in front of shared
func NewTiered(local, shared Client, localTTL time.Duration) *Tiered {
	return &Tiered{local: local, shared: shared, localTTL: localTTL}
}

// Get checks the local tier, then the shared tier.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, error) {
	if val, err := t.local.Get(ctx, key); err == nil {
		return val, nil
	}
	val, err := t.shared.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = t.local.Set(ctx, key, val, t.localTTL)
	return val, nil
}

// Set writes both tiers. A shared-tier failure is returned after the local
// write has happened.
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	localTTL := t.localTTL
	if ttl > 0 && ttl < localTTL {
		localTTL = ttl
	}
	_ = t.local.Set(ctx, key, value, localTTL)
	return t.shared.Set(ctx, key, value, ttl)
}

// Delete removes the key from both tiers.
func (t *Tiered) Delete(ctx context.Context, key string) error {
	_ = t.local.Delete(ctx, key)
	return t.shared.Delete(ctx, key)
}

// Close closes both tiers.
func (t *Tiered) Close() error {
	return errors.Join(t.local.Close(), t.shared.Close())
}
