// Package cache provides byte-oriented caching with pluggable backends.
//
// # Overview
//
// Darkroom caches expensive, recomputable data: responses from the
// generative edit service and rendered provenance artifacts. The [Cache]
// interface is deliberately small (get/set/delete over byte slices) so
// backends stay interchangeable:
//
//   - [NewFileCache]: directory-backed cache for CLI usage
//   - [NewMemoryCache]: in-process cache for tests and short sessions
//   - [NewRedisCache]: Redis-backed cache for long-running serve mode
//   - [NewNullCache]: disabled caching
//
// # Keys
//
// Cache keys are produced by a [Keyer], which hashes the inputs that make
// a result unique (the edit instruction plus the content hashes of every
// input image). Wrap a keyer with [NewScopedKeyer] to namespace keys per
// workspace or user.
//
// Nothing in this package persists workspace state: every entry can be
// regenerated from the inputs, and losing the cache only costs time.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
