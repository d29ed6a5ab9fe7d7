// Package genedit is the client for the generative edit service.
//
// # Overview
//
// The edit service takes a natural-language instruction plus one or
// more input images and returns a single edited image. This package
// handles the wire protocol (JSON with base64-encoded PNG images),
// authentication, retries, and result caching.
//
// # Errors
//
// Service rejections are surfaced with the service's own message, so
// the user sees exactly what the service said. Transient failures
// (network errors, 5xx responses) are retried with exponential
// backoff before giving up. Rate limiting is reported through
// [errors.RateLimitedError] with the Retry-After header when present.
//
// # Caching
//
// Edit results are cached by instruction, input image content hashes,
// and model. Repeating an identical edit hits the cache instead of
// the service; change any input and the key changes with it.
package genedit
