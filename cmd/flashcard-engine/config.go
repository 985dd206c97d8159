// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/flashcard-engine/internal/deck"
	"github.com/pdiddy/flashcard-engine/internal/generate"
	"github.com/pdiddy/flashcard-engine/internal/provider"
	"github.com/pdiddy/flashcard-engine/internal/secrets"
	"github.com/pdiddy/flashcard-engine/internal/telemetry"
	"github.com/pdiddy/flashcard-engine/pkg/types"
)

func init() {
	viper.SetDefault("generation.max_attempts", generate.DefaultMaxAttempts)
	viper.SetDefault("generation.attempt_timeout", generate.DefaultAttemptTimeout)
	viper.SetDefault("generation.backoff_base", "1s")
	viper.SetDefault("generation.fallback", true)
}

// generationConfig assembles the pipeline settings from flags, the config
// file, environment, and the secrets directory.
func generationConfig() types.GenerationConfig {
	p := types.Provider(viper.GetString("ai.provider"))
	return types.GenerationConfig{
		AIConfig: types.AIConfig{
			Provider:   p,
			Model:      viper.GetString("ai.model"),
			APIKey:     loadedSecrets.APIKey(p),
			Endpoint:   viper.GetString("ai.endpoint"),
			Deployment: viper.GetString("ai.deployment"),
			Timeout:    viper.GetDuration("ai.timeout"),
		},
		MaxAttempts:    viper.GetInt("generation.max_attempts"),
		AttemptTimeout: viper.GetDuration("generation.attempt_timeout"),
		BackoffBase:    viper.GetDuration("generation.backoff_base"),
		Fallback:       viper.GetBool("generation.fallback"),
	}
}

// newGenerator wires the configured backend to the pipeline with logging
// and, when metrics is non-nil, Prometheus counters.
func newGenerator(ctx context.Context, cfg types.GenerationConfig, metrics *telemetry.Metrics) (*generate.Generator, error) {
	if file := secrets.KeyFile(cfg.Provider); cfg.APIKey == "" && file != "" {
		return nil, fmt.Errorf("no API key for provider %q: add %s to the secrets directory or set it in the environment",
			cfg.Provider, file)
	}
	backend, err := provider.New(ctx, cfg.AIConfig)
	if err != nil {
		return nil, err
	}

	var obs generate.Observer = telemetry.NewLogObserver(logger)
	if metrics != nil {
		obs = telemetry.Multi{obs, metrics}
	}

	return generate.New(backend,
		generate.WithObserver(obs),
		generate.WithMaxAttempts(cfg.MaxAttempts),
		generate.WithAttemptTimeout(cfg.AttemptTimeout),
		generate.WithBackoffBase(cfg.BackoffBase),
		generate.WithFallback(cfg.Fallback),
	), nil
}

func openStore() (*deck.Store, error) {
	return deck.Open(types.DeckStoreConfig{Path: viper.GetString("deck.path")})
}
