// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdiddy/flashcard-engine/internal/generate"
)

// Metrics counts pipeline events in its own registry.
type Metrics struct {
	reg *prometheus.Registry

	attemptsFailed *prometheus.CounterVec
	retries        *prometheus.CounterVec
	partial        *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
}

// NewMetrics registers the pipeline counters in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		attemptsFailed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashcard_attempts_failed_total",
				Help: "Failed generation attempts by failure kind and retry cycle",
			},
			[]string{"backend", "kind", "cycle"},
		),
		retries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashcard_retries_total",
				Help: "Retries scheduled by retry cycle",
			},
			[]string{"backend", "cycle"},
		),
		partial: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashcard_partial_batches_total",
				Help: "Generations accepted with fewer items than requested",
			},
			[]string{"backend"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashcard_fallbacks_total",
				Help: "Generations answered with placeholder items, by final failure kind",
			},
			[]string{"backend", "kind"},
		),
	}
}

// Registry exposes the underlying registry for scraping.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// WriteTextfile writes the current values in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

func failureKind(f *generate.Failure) string {
	if f == nil {
		return ""
	}
	return string(f.Kind)
}

func (m *Metrics) AttemptFailed(e generate.Event) {
	m.attemptsFailed.WithLabelValues(e.Backend, failureKind(e.Failure), string(e.Cycle)).Inc()
}

func (m *Metrics) RetryScheduled(e generate.Event) {
	m.retries.WithLabelValues(e.Backend, string(e.Cycle)).Inc()
}

func (m *Metrics) PartialSuccess(e generate.Event) {
	m.partial.WithLabelValues(e.Backend).Inc()
}

func (m *Metrics) FallbackUsed(e generate.Event) {
	m.fallbacks.WithLabelValues(e.Backend, failureKind(e.Failure)).Inc()
}
