package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for cache operations.
var (
	// ErrNotFound reports that a requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork reports a failure reaching a remote backend, such as
	// a Redis connection drop or timeout.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss reports that a key is absent from the cache.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks an error as transient. Backends wrap
// connection-level failures with it so callers can distinguish "try
// again" from "give up": a dropped Redis connection is retryable, a
// corrupt entry is not.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere
// in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to 3 times, doubling the delay between
// attempts starting from one second. Only errors marked with
// [Retryable] trigger another attempt; everything else returns
// immediately.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
