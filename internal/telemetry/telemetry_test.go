// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package telemetry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/flashcard-engine/internal/generate"
	"github.com/pdiddy/flashcard-engine/pkg/types"
)

func rateLimited() *generate.Failure {
	return generate.Classify(errors.New("429 Too Many Requests"))
}

func sampleEvent() generate.Event {
	return generate.Event{
		RunID:     "run-1",
		Backend:   "claude:test",
		Topic:     "Photosynthesis",
		Requested: 10,
		Cycle:     generate.CycleCall,
		Attempt:   2,
		Failure:   rateLimited(),
	}
}

func TestLogObserver_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	o := NewLogObserver(zap.New(core))

	e := sampleEvent()
	o.AttemptFailed(e)
	e.Delay = 2 * time.Second
	o.RetryScheduled(e)
	o.PartialSuccess(generate.Event{RunID: "run-1", Requested: 10, Received: 6})
	o.FallbackUsed(e)

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "attempt failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "run-1", fields["run_id"])
	assert.Equal(t, "RATE_LIMIT", fields["kind"])
	assert.Equal(t, int64(2), fields["attempt"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, 2*time.Second, entries[1].ContextMap()["delay"])

	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, int64(6), entries[2].ContextMap()["received"])

	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)
	assert.Equal(t, "using placeholder flashcards", entries[3].Message)
}

func TestMetrics_Counts(t *testing.T) {
	m := NewMetrics()
	e := sampleEvent()

	m.AttemptFailed(e)
	m.AttemptFailed(e)
	m.RetryScheduled(e)
	m.PartialSuccess(e)
	m.FallbackUsed(e)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attemptsFailed.WithLabelValues("claude:test", "RATE_LIMIT", "call")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.retries.WithLabelValues("claude:test", "call")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.partial.WithLabelValues("claude:test")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("claude:test", "RATE_LIMIT")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.RetryScheduled(sampleEvent())

	path := filepath.Join(t.TempDir(), "flashcards.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `flashcard_retries_total{backend="claude:test",cycle="call"} 1`)
}

func TestMulti_FansOut(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := NewMetrics()
	multi := Multi{NewLogObserver(zap.New(core)), m}

	multi.FallbackUsed(sampleEvent())

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("claude:test", "RATE_LIMIT")))
}

// flakyBackend fails with a rate limit until calls reaches okAfter.
type flakyBackend struct {
	mu      sync.Mutex
	calls   int
	okAfter int
}

func (b *flakyBackend) Name() string { return "flaky" }

func (b *flakyBackend) Generate(context.Context, string) ([]types.GeneratedItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.calls < b.okAfter {
		return nil, errors.New("rate limit exceeded")
	}
	return []types.GeneratedItem{{Question: "What is ATP?", Answer: "Energy carrier."}}, nil
}

func TestMetrics_WiredIntoGenerator(t *testing.T) {
	m := NewMetrics()
	g := generate.New(&flakyBackend{okAfter: 3},
		generate.WithObserver(m),
		generate.WithBackoffBase(time.Millisecond))

	req, err := types.NewGenerationRequest("Cellular respiration", 1, "")
	require.NoError(t, err)

	res, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.attemptsFailed.WithLabelValues("flaky", "RATE_LIMIT", "call")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.retries.WithLabelValues("flaky", "call")))
}
