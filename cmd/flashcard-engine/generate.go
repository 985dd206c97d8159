// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/flashcard-engine/internal/deck"
	"github.com/pdiddy/flashcard-engine/internal/generate"
	"github.com/pdiddy/flashcard-engine/internal/telemetry"
	"github.com/pdiddy/flashcard-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate flashcards for a topic",
	Long: `Generate asks the configured AI provider for question/answer flashcards
about a topic. Failed calls are retried up to three times with exponential
backoff (1s, 2s, 4s) and each call is bounded by a 30 second deadline. A batch
with fewer than half the requested cards triggers another round of attempts.

When generation cannot recover, placeholder cards are returned so the deck
can be edited later. Authentication errors are never masked this way; pass
--no-fallback to surface every failure.

Cards are printed as YAML or JSON, or appended to a deck with --deck.`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("topic", "", "subject to generate flashcards about (required)")
	f.Int("count", 10, "number of flashcards to request")
	f.String("difficulty", "intermediate", "beginner, intermediate, or advanced")
	f.Bool("no-fallback", false, "fail instead of returning placeholder cards")
	f.String("format", "yaml", "output format: yaml or json")
	f.Int64("deck", 0, "append the cards to this deck instead of printing them")
	f.String("metrics-file", "", "write Prometheus counters to this file after the run")
	_ = generateCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	noFallback, _ := cmd.Flags().GetBool("no-fallback")
	format, _ := cmd.Flags().GetString("format")
	deckID, _ := cmd.Flags().GetInt64("deck")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	d, err := types.ParseDifficulty(difficulty)
	if err != nil {
		return err
	}
	req, err := types.NewGenerationRequest(topic, count, d)
	if err != nil {
		return err
	}

	var metrics *telemetry.Metrics
	if metricsFile != "" {
		metrics = telemetry.NewMetrics()
		defer func() {
			if err := metrics.WriteTextfile(metricsFile); err != nil {
				logger.Warn("metrics not written", zap.Error(err))
			}
		}()
	}

	ctx := cmd.Context()
	gen, err := newGenerator(ctx, generationConfig(), metrics)
	if err != nil {
		return err
	}

	var opts []generate.CallOption
	if noFallback {
		opts = append(opts, generate.WithoutFallback())
	}

	if deckID != 0 {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		res, n, err := store.GenerateCards(ctx, gen, deckID, req, opts...)
		if err != nil {
			return err
		}
		reportResult(cmd.ErrOrStderr(), res, req)
		fmt.Fprintf(cmd.OutOrStdout(), "added %d flashcards to deck %d\n", n, deckID)
		return nil
	}

	res, err := gen.Generate(ctx, req, opts...)
	if err != nil {
		return err
	}
	reportResult(cmd.ErrOrStderr(), res, req)
	return deck.Encode(cmd.OutOrStdout(), deck.Format(format), res.Items)
}

func reportResult(w io.Writer, res generate.Result, req types.GenerationRequest) {
	if res.Fallback {
		fmt.Fprintf(w, "warning: %v; returning %d placeholder flashcards\n", res.Failure, len(res.Items))
		return
	}
	fmt.Fprintf(w, "generated %d of %d flashcards about %q (%d provider calls, run %s)\n",
		len(res.Items), req.Count, req.Topic, res.Attempts, res.RunID)
}
