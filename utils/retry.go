package utils

import (
	"context"
	"time"
)

// Retry runs fn up to attempts times, sleeping baseDelay, 2*baseDelay,
// 4*baseDelay... between failures. It returns the last error when every
// attempt fails, and stops early if the context is cancelled.
func Retry(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
