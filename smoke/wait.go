package smoke

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Condition reports whether the awaited state has been reached. A non-nil error stops the wait.
type Condition func(ctx context.Context) (bool, error)

// Poll checks cond immediately and then every interval until it returns true, it returns an error, or timeout
// elapses. When timeout elapses Poll returns a *TimeoutError naming op.
func Poll(ctx context.Context, op string, timeout, interval time.Duration, cond Condition) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond(waitCtx)
		if err != nil {
			if waitCtx.Err() != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
				return &TimeoutError{Op: op, Timeout: timeout}
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		if ok {
			return nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return fmt.Errorf("%s: %w", op, ctx.Err())
			}
			return &TimeoutError{Op: op, Timeout: timeout}
		case <-ticker.C:
		}
	}
}
