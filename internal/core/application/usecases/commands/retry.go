package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/ports"
)

const (
	conflictRetryAttempts = 3
	conflictRetryBaseWait = 25 * time.Millisecond
)

// withConflictRetry runs fn up to conflictRetryAttempts times, backing off
// exponentially between attempts that failed with ErrConcurrencyConflict.
// Any other error, and the conflict from the final attempt, are returned as is.
func withConflictRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < conflictRetryAttempts; attempt++ {
		if attempt > 0 {
			wait := conflictRetryBaseWait << (attempt - 1)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err = fn(ctx)
		if !errors.Is(err, ports.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}
