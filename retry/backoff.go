// Package retry holds the generic exponential-backoff loop shared by
// every HTTP-calling edge in the engine — GTM's own API calls, the
// vision service, and the Redis-backed feedback cache — so the retry
// shape lives in one place instead of being reinvented per caller.
package retry

import (
	"context"
	"fmt"
	"time"
)

const maxBackoff = 32 * time.Second

// Do executes fn with exponential backoff, retrying only errors
// isRetryable accepts. Returns the result or the final error after at
// most maxRetries retries (maxRetries+1 calls of fn in all).
func Do[T any](ctx context.Context, maxRetries int, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		if isRetryable(err) && attempt < maxRetries {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			if wait > maxBackoff {
				wait = maxBackoff
			}
			select {
			case <-time.After(wait):
				lastErr = err
				continue
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		return zero, err
	}

	return zero, fmt.Errorf("max retries exceeded: %w", lastErr)
}
