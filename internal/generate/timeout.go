// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

// DefaultAttemptTimeout is the deadline for a single provider call.
const DefaultAttemptTimeout = 30 * time.Second

// attemptFunc is one provider invocation.
type attemptFunc func(ctx context.Context) ([]types.GeneratedItem, error)

type attemptResult struct {
	items []types.GeneratedItem
	err   error
}

// withTimeout races fn against a deadline. If the deadline wins, fn's
// context is cancelled and fn is abandoned; its eventual result is dropped.
// Otherwise fn's result or raw error is returned unchanged.
func withTimeout(ctx context.Context, d time.Duration, fn attemptFunc) ([]types.GeneratedItem, error) {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		items, err := fn(callCtx)
		done <- attemptResult{items: items, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.items, r.err
	case <-timer.C:
		return nil, newFailure(KindTimeout, fmt.Sprintf("Request timed out after %dms", d.Milliseconds()), context.DeadlineExceeded)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
