package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as worth retrying. The edit-service
// client wraps timeouts and 5xx responses with it; everything else
// (auth failures, invalid requests) fails fast.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times with exponential backoff,
// doubling delay after each failure. Only errors wrapped in
// [RetryableError] trigger another attempt; other errors return
// immediately. If the context is cancelled while waiting, ctx.Err()
// is returned instead of the last attempt's error.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
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

// RetryWithBackoff is [Retry] with the defaults the edit client uses:
// 3 attempts starting at a 1 second delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
