// Package cache provides pluggable byte caches for rendered avatars.
//
// Generating an avatar is cheap but not free, and the same seed is usually
// requested many times. The HTTP server and the CLI both cache the rendered
// SVG bytes keyed by seed and configuration hash, so a cache entry is valid
// for exactly one generator configuration.
//
// Backends: in-process files for the CLI, Redis or MongoDB for server
// deployments, and a null cache to disable caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered avatar documents as opaque bytes.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for avatar artifacts.
type Keyer interface {
	// AvatarKey returns the key for a rendered avatar: one seed under one
	// generator configuration.
	AvatarKey(seed, configHash string) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AvatarKey hashes seed and configuration together so arbitrary seed strings
// stay safe for every backend's key syntax.
func (k *DefaultKeyer) AvatarKey(seed, configHash string) string {
	return hashKey("avatar", seed, configHash)
}

// ScopedKeyer prefixes another keyer's keys, isolating tenants that share
// one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key. A nil
// inner keyer falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// AvatarKey returns the prefixed avatar key.
func (k *ScopedKeyer) AvatarKey(seed, configHash string) string {
	return k.prefix + k.inner.AvatarKey(seed, configHash)
}
