// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate turns a topic into a batch of flashcards by calling a
// generative AI backend. It retries transient failures with exponential
// backoff, bounds every call with a deadline, accepts partial batches of
// at least half the requested size, and substitutes placeholder cards when
// generation cannot be recovered (except for authentication failures).
package generate

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

// Backend abstracts the generative AI provider so tests can supply a mock.
// Implementations request structured output matching
// {"flashcards": [{"question": ..., "answer": ...}]}.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string) ([]types.GeneratedItem, error)
}

// Result is a successful generation. Fallback results carry the failure
// that caused them for observability; callers need not inspect it.
type Result struct {
	Items    []types.GeneratedItem
	Fallback bool
	Failure  *Failure
	RunID    string

	// Attempts is the number of provider calls made.
	Attempts int
}

// Generator is safe for concurrent use; each call owns its attempt budget
// and backoff timers.
type Generator struct {
	backend     Backend
	observer    Observer
	maxAttempts int
	timeout     time.Duration
	base        time.Duration
	fallback    bool
	sleep       func(context.Context, time.Duration) error
}

// Option configures a Generator.
type Option func(*Generator)

// WithObserver sets the observability hook.
func WithObserver(o Observer) Option {
	return func(g *Generator) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithMaxAttempts overrides the attempt budget of each retry cycle.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithAttemptTimeout overrides the per-call deadline.
func WithAttemptTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithBackoffBase overrides the first retry delay.
func WithBackoffBase(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.base = d
		}
	}
}

// WithFallback enables or disables placeholder cards by default.
func WithFallback(enabled bool) Option {
	return func(g *Generator) { g.fallback = enabled }
}

// New returns a Generator that calls backend.
func New(backend Backend, opts ...Option) *Generator {
	g := &Generator{
		backend:     backend,
		observer:    NopObserver{},
		maxAttempts: DefaultMaxAttempts,
		timeout:     DefaultAttemptTimeout,
		base:        backoffBase,
		fallback:    true,
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CallOption adjusts a single Generate call.
type CallOption func(*callOptions)

type callOptions struct {
	fallback bool
}

// WithoutFallback makes this call return the failure instead of
// placeholder cards.
func WithoutFallback() CallOption {
	return func(o *callOptions) { o.fallback = false }
}

// MinAcceptable is the smallest batch accepted without another attempt:
// half the requested count, rounded up.
func MinAcceptable(count int) int {
	return int(math.Ceil(float64(count) * 0.5))
}

// Generate produces flashcards for req. On success the returned Result
// holds between MinAcceptable(req.Count) and req.Count items, or exactly
// req.Count placeholder items when fallback was applied. On failure the
// error is a *Failure, except for invalid requests which wrap
// types.ErrInvalidRequest.
func (g *Generator) Generate(ctx context.Context, req types.GenerationRequest, opts ...CallOption) (Result, error) {
	req, err := req.Normalize()
	if err != nil {
		return Result{}, err
	}
	co := callOptions{fallback: g.fallback}
	for _, opt := range opts {
		opt(&co)
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return Result{}, fmt.Errorf("rendering prompt: %w", err)
	}

	base := Event{
		RunID:     uuid.NewString(),
		Backend:   g.backend.Name(),
		Topic:     req.Topic,
		Requested: req.Count,
	}
	var calls atomic.Int32

	call := func(ctx context.Context) ([]types.GeneratedItem, error) {
		calls.Add(1)
		items, err := g.backend.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		if len(items) > req.Count {
			items = items[:req.Count]
		}
		for i, it := range items {
			if err := it.Validate(); err != nil {
				return nil, fmt.Errorf("response failed schema validation: item %d: %w", i, err)
			}
		}
		return items, nil
	}

	inner := g.retrier(g.timeout, base, CycleCall)

	// The acceptance check sits outside the inner cycle, so an under-count
	// becomes a retryable outcome of a second cycle. Inner exhaustion is
	// non-retryable and ends the outer cycle at once.
	accept := func(ctx context.Context) ([]types.GeneratedItem, error) {
		items, err := inner.do(ctx, call)
		if err != nil {
			return nil, err
		}
		if len(items) < MinAcceptable(req.Count) {
			return nil, newFailure(KindValidation,
				fmt.Sprintf("Only generated %d of %d requested flashcards", len(items), req.Count), nil)
		}
		return items, nil
	}

	items, err := g.retrier(0, base, CycleAcceptance).do(ctx, accept)
	if err == nil {
		if len(items) < req.Count {
			ev := base
			ev.Received = len(items)
			g.observer.PartialSuccess(ev)
		}
		return Result{Items: items, RunID: base.RunID, Attempts: int(calls.Load())}, nil
	}

	f := Classify(err)
	if co.fallback && f.Kind != KindAuth && ctx.Err() == nil {
		ev := base
		ev.Failure = f
		g.observer.FallbackUsed(ev)
		return Result{
			Items:    Fallback(req.Topic, req.Count),
			Fallback: true,
			Failure:  f,
			RunID:    base.RunID,
			Attempts: int(calls.Load()),
		}, nil
	}
	return Result{}, f
}

func (g *Generator) retrier(timeout time.Duration, ev Event, cycle Cycle) retrier {
	ev.Cycle = cycle
	return retrier{
		maxAttempts: g.maxAttempts,
		timeout:     timeout,
		base:        g.base,
		sleep:       g.sleep,
		observer:    g.observer,
		event:       ev,
	}
}
