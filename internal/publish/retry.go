package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Default retry settings: three attempts, waiting 1s then 2s.
const (
	DefaultAttempts = 3
	DefaultBackoff  = time.Second
)

// RetryPolicy retries a single write with linear backoff.
type RetryPolicy struct {
	Attempts int
	Base     time.Duration
	// Sleep waits between attempts; nil means a timer honoring ctx.
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger *slog.Logger
}

// DefaultRetryPolicy returns the standard policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: DefaultAttempts, Base: DefaultBackoff}
}

// Backoff returns the wait after failed attempt n (0-indexed).
func (p RetryPolicy) Backoff(n int) time.Duration {
	return time.Duration(n+1) * p.Base
}

// Do runs fn until it succeeds or the attempts are spent. The final error
// wraps ErrPublishFailed.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	attempts := max(p.Attempts, 1)
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var err error
	for n := range attempts {
		if err = fn(ctx); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if n == attempts-1 {
			break
		}

		wait := p.Backoff(n)
		if p.Logger != nil {
			p.Logger.Warn("write failed, retrying", "op", op, "attempt", n+1, "wait", wait, "error", err)
		}
		if serr := sleep(ctx, wait); serr != nil {
			return serr
		}
	}

	return fmt.Errorf("%w: %s after %d attempts: %v", ErrPublishFailed, op, attempts, err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
