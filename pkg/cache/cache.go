// Package cache stores fetched index listing pages between runs.
//
// Only HTML listings (the catalog root and per-package release pages)
// are cached. Artifact bytes are never persisted.
//
// Backends:
//   - [NullCache]: caching disabled (default)
//   - [FileCache]: one JSON file per entry under a local directory
//   - [RedisCache]: a shared Redis instance, for fleets of scanners
//
// Use [Namespace] to keep entries of different index hosts apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
//
// Get reports a miss as (nil, false, nil). Expired entries are misses.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// prefixed wraps a Cache and prepends a fixed prefix to every key.
type prefixed struct {
	Cache
	prefix string
}

// Namespace returns a view of c whose keys are prefixed with prefix.
// Namespaces nest: Namespace(Namespace(c, "a:"), "b:") uses "a:b:".
func Namespace(c Cache, prefix string) Cache {
	if prefix == "" {
		return c
	}
	if p, ok := c.(*prefixed); ok {
		return &prefixed{Cache: p.Cache, prefix: p.prefix + prefix}
	}
	return &prefixed{Cache: c, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.Cache.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return p.Cache.Set(ctx, p.prefix+key, data, ttl)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.Cache.Delete(ctx, p.prefix+key)
}
