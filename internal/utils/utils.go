package utils

import (
	"context"
	"fmt"
	"time"
)

var sleep = time.Sleep

// WaitFor sleeps for the given duration unless the context ends first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Retry runs fn up to attempts times, sleeping between tries with an
// exponential backoff that starts at baseDelay and doubles per retry. Every
// error is retried; after the budget is exhausted the last error is returned.
// The function keeps no shared state, so it is safe to call concurrently for
// independent operations.
func Retry[T any](ctx context.Context, attempts int, baseDelay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		if err := WaitFor(ctx, delay); err != nil {
			return zero, err
		}
		delay *= 2
	}

	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
