package gtm

import (
	"context"
	"errors"
	"fmt"

	"ga4oracle/retry"

	"google.golang.org/api/googleapi"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource conflict - fingerprint mismatch")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrPermission     = errors.New("insufficient permissions")
	ErrInvalidRequest = errors.New("invalid request")
)

// retryWithBackoff executes fn with exponential backoff for rate limits.
// Returns the result or final error after at most maxRetries retries
// (maxRetries+1 calls of fn in all).
func retryWithBackoff[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	return retry.Do(ctx, maxRetries, isGoogleRateLimit, fn)
}

// isGoogleRateLimit reports whether err is a Google API 403/429 that's
// worth retrying.
func isGoogleRateLimit(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 403 || apiErr.Code == 429
}

// mapGoogleError converts Google API errors to our error types.
func mapGoogleError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 404:
			return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
		case 409:
			return fmt.Errorf("%w: %s", ErrConflict, apiErr.Message)
		case 403:
			return fmt.Errorf("%w: %s", ErrPermission, apiErr.Message)
		case 429:
			return fmt.Errorf("%w: %s", ErrRateLimit, apiErr.Message)
		case 400:
			return fmt.Errorf("%w: %s", ErrInvalidRequest, apiErr.Message)
		}
	}

	return err
}
