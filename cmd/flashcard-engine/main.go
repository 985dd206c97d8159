// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the flashcard-engine CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/flashcard-engine/internal/secrets"
	"github.com/pdiddy/flashcard-engine/internal/telemetry"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from the secrets directory at startup.
	loadedSecrets secrets.Set

	logger = zap.NewNop()
)

// rootCmd is the base command for the flashcard-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "flashcard-engine",
	Short: "Generate study flashcards with resilient AI calls",
	Long: `flashcard-engine turns a topic into question/answer flashcards using a
generative AI provider (Claude, Gemini, or Azure OpenAI). Transient provider
failures are retried with exponential backoff; when generation cannot recover
the engine returns editable placeholder cards instead of failing.

Generated cards can be printed or stored in decks in a local SQLite database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := telemetry.NewLogger(viper.GetBool("verbose"))
		if err != nil {
			return err
		}
		logger = l

		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./flashcard-engine.yaml or ~/.config/flashcard-engine/config.yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("secrets-dir", ".secrets/", "directory of API key files")
	pf.String("db", "", "deck database path (default data/flashcards.db)")
	pf.String("provider", "claude", "AI provider: claude, gemini, or azure")
	pf.String("model", "", "model identifier (provider default when empty)")
	pf.String("endpoint", "", "Azure OpenAI endpoint, or base URL override for other providers")
	pf.String("deployment", "", "Azure OpenAI deployment name")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("secrets_dir", pf.Lookup("secrets-dir"))
	_ = viper.BindPFlag("deck.path", pf.Lookup("db"))
	_ = viper.BindPFlag("ai.provider", pf.Lookup("provider"))
	_ = viper.BindPFlag("ai.model", pf.Lookup("model"))
	_ = viper.BindPFlag("ai.endpoint", pf.Lookup("endpoint"))
	_ = viper.BindPFlag("ai.deployment", pf.Lookup("deployment"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("flashcard-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "flashcard-engine"))
		}
	}

	viper.SetEnvPrefix("FLASHCARD_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// execute runs the command tree and prints any failure to stderr as-is.
// Pipeline failures render as "KIND: message".
func execute(ctx context.Context, args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
