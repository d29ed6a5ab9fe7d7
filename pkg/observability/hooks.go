// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about workspace mutations, cache operations, and edit
// service calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStudioHooks(&myStudioHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Studio().OnImport(ctx, imported, skipped)
//	observability.Studio().OnHistoryMove(ctx, "undo", assetCount)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Studio Hooks
// =============================================================================

// StudioHooks receives events from workspace registry mutations.
type StudioHooks interface {
	// OnImport records a batch import: how many assets were added and how
	// many files were skipped due to decode failures.
	OnImport(ctx context.Context, imported, skipped int)

	// OnExtract records a region extraction from a source asset.
	OnExtract(ctx context.Context, sourceID string, width, height int)

	// OnPromote records a service result being promoted into the collection.
	OnPromote(ctx context.Context, assetID string)

	// OnHistoryMove records an undo or redo step. direction is "undo" or
	// "redo"; assetCount is the collection size after the move.
	OnHistoryMove(ctx context.Context, direction string, assetCount int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStudioHooks is a no-op implementation of StudioHooks.
type NoopStudioHooks struct{}

func (NoopStudioHooks) OnImport(context.Context, int, int)          {}
func (NoopStudioHooks) OnExtract(context.Context, string, int, int) {}
func (NoopStudioHooks) OnPromote(context.Context, string)           {}
func (NoopStudioHooks) OnHistoryMove(context.Context, string, int)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	studioHooks StudioHooks = NoopStudioHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetStudioHooks registers custom studio hooks.
// This should be called once at application startup before any registry operations.
func SetStudioHooks(h StudioHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		studioHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Studio returns the registered studio hooks.
func Studio() StudioHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return studioHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	studioHooks = NoopStudioHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
