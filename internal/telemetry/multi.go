// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package telemetry

import "github.com/pdiddy/flashcard-engine/internal/generate"

// Multi fans every event out to each observer in order.
type Multi []generate.Observer

func (m Multi) AttemptFailed(e generate.Event) {
	for _, o := range m {
		o.AttemptFailed(e)
	}
}

func (m Multi) RetryScheduled(e generate.Event) {
	for _, o := range m {
		o.RetryScheduled(e)
	}
}

func (m Multi) PartialSuccess(e generate.Event) {
	for _, o := range m {
		o.PartialSuccess(e)
	}
}

func (m Multi) FallbackUsed(e generate.Event) {
	for _, o := range m {
		o.FallbackUsed(e)
	}
}
