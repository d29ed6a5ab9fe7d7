// Package httputil provides HTTP utilities for the edit service client.
//
// # Overview
//
// This package provides infrastructure used by outbound HTTP clients:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/darkroom/)
// with configurable TTL. This speeds up repeated operations and avoids
// re-submitting identical requests to the edit service.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, _ := cache.Get("edit:"+key, &result)  // Check cache
//	if !ok {
//	    result = callService()
//	    cache.Set("edit:"+key, result)        // Store for later
//	}
//
// Cache keys should be namespaced by concern to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff with jitter to avoid thundering herd:
//
//	resp, err := httputil.Retry(func() (*http.Response, error) {
//	    return http.Get(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/darkroom/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `darkroom cache clear` or by deleting
// the cache directory.
package httputil
