// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

// DefaultMaxAttempts is the attempt budget of one retry cycle.
const DefaultMaxAttempts = 3

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// backoffDelay returns the wait after the given 0-based attempt:
// base, 2*base, 4*base, ...
func backoffDelay(attempt int, base time.Duration) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * base
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retrier drives a bounded, strictly sequential sequence of attempts.
type retrier struct {
	maxAttempts int
	timeout     time.Duration
	base        time.Duration
	sleep       func(context.Context, time.Duration) error
	observer    Observer
	event       Event
}

// do runs fn until it succeeds, fails with a non-retryable error, or the
// attempt budget is spent. Every returned error is a *Failure. Exhausting
// the budget yields a non-retryable UNKNOWN failure wrapping the last one.
func (r retrier) do(ctx context.Context, fn attemptFunc) ([]types.GeneratedItem, error) {
	var last *Failure

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		items, err := r.run(ctx, fn)
		if err == nil {
			return items, nil
		}
		if ctx.Err() != nil {
			return nil, cancelled(ctx)
		}

		last = Classify(err)
		ev := r.event
		ev.Attempt = attempt + 1
		ev.Failure = last
		r.observer.AttemptFailed(ev)

		if !last.Retryable {
			return nil, last
		}

		// No sleep after the final attempt.
		if attempt < r.maxAttempts-1 {
			ev.Delay = backoffDelay(attempt, r.base)
			r.observer.RetryScheduled(ev)
			if err := r.sleep(ctx, ev.Delay); err != nil {
				return nil, cancelled(ctx)
			}
		}
	}

	return nil, &Failure{
		Kind:      KindUnknown,
		Message:   fmt.Sprintf("Failed after %d attempts: %s", r.maxAttempts, last.Message),
		Retryable: false,
		Err:       last,
	}
}

// run executes one attempt, behind the timeout guard when a per-attempt
// deadline is set.
func (r retrier) run(ctx context.Context, fn attemptFunc) ([]types.GeneratedItem, error) {
	if r.timeout <= 0 {
		return fn(ctx)
	}
	return withTimeout(ctx, r.timeout, fn)
}

func cancelled(ctx context.Context) *Failure {
	return &Failure{
		Kind:      KindUnknown,
		Message:   "Generation cancelled: " + ctx.Err().Error(),
		Retryable: false,
		Err:       ctx.Err(),
	}
}
