// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package telemetry adapts generation pipeline events to structured logs
// and Prometheus counters.
package telemetry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/flashcard-engine/internal/generate"
)

// NewLogger builds the production zap logger. verbose lowers the level to debug.
func NewLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// LogObserver writes pipeline events to a zap logger.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver returns an observer logging to log.
func NewLogObserver(log *zap.Logger) *LogObserver {
	return &LogObserver{log: log.Named("generate")}
}

func eventFields(e generate.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("run_id", e.RunID),
		zap.String("backend", e.Backend),
		zap.String("topic", e.Topic),
		zap.Int("requested", e.Requested),
	}
	if e.Cycle != "" {
		fields = append(fields, zap.String("cycle", string(e.Cycle)))
	}
	if e.Attempt > 0 {
		fields = append(fields, zap.Int("attempt", e.Attempt))
	}
	if e.Failure != nil {
		fields = append(fields,
			zap.String("kind", string(e.Failure.Kind)),
			zap.String("reason", e.Failure.Message))
	}
	return fields
}

func (o *LogObserver) AttemptFailed(e generate.Event) {
	o.log.Debug("attempt failed", eventFields(e)...)
}

func (o *LogObserver) RetryScheduled(e generate.Event) {
	o.log.Info("retrying", append(eventFields(e), zap.Duration("delay", e.Delay))...)
}

func (o *LogObserver) PartialSuccess(e generate.Event) {
	o.log.Warn("partial batch accepted", append(eventFields(e), zap.Int("received", e.Received))...)
}

func (o *LogObserver) FallbackUsed(e generate.Event) {
	o.log.Warn("using placeholder flashcards", eventFields(e)...)
}
