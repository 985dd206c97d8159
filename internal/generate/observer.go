// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import "time"

// Cycle names the retry cycle an event belongs to.
type Cycle string

const (
	// CycleCall retries individual provider calls.
	CycleCall Cycle = "call"

	// CycleAcceptance retries whole call cycles whose batch was too small.
	CycleAcceptance Cycle = "acceptance"
)

// Event carries the details of one pipeline observation. Fields that do
// not apply to a given hook are left zero.
type Event struct {
	RunID     string
	Backend   string
	Topic     string
	Requested int
	Cycle     Cycle

	// Attempt is the 1-based attempt number within its retry cycle.
	Attempt int

	// Delay is the backoff before the next attempt.
	Delay time.Duration

	// Received is the number of items a provider returned.
	Received int

	Failure *Failure
}

// Observer receives non-fatal pipeline signals. Implementations must be
// safe for concurrent use; the pipeline never waits on them for a decision.
type Observer interface {
	// AttemptFailed is called for every failed attempt after classification.
	AttemptFailed(Event)

	// RetryScheduled is called before sleeping between attempts.
	RetryScheduled(Event)

	// PartialSuccess is called when fewer than the requested items were
	// accepted.
	PartialSuccess(Event)

	// FallbackUsed is called when placeholder items replace a failed generation.
	FallbackUsed(Event)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) AttemptFailed(Event)  {}
func (NopObserver) RetryScheduled(Event) {}
func (NopObserver) PartialSuccess(Event) {}
func (NopObserver) FallbackUsed(Event)   {}
