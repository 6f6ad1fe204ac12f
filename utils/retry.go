package utils

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy retries an operation with exponential backoff. Retry behavior
// lives here, not around call sites, so it stays configurable and testable.
type RetryPolicy struct {
	MaxAttempts int
	Factor      int
	// Retryable reports whether the error is worth another attempt; nil means
	// every error is retryable.
	Retryable func(error) bool
	// Sleep is swapped out in tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// Do runs fn up to MaxAttempts times, sleeping Factor*2^n seconds between
// attempts. The first non-retryable error is returned as is; exhaustion
// returns the last error wrapped with the attempt count.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == p.MaxAttempts-1 {
			break
		}
		sleep(time.Duration(p.Factor<<attempt) * time.Second)
	}
	return fmt.Errorf("giving up after %d attempts: %s", p.MaxAttempts, err)
}
