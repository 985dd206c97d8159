// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/flashcard-engine/internal/deck"
	"github.com/pdiddy/flashcard-engine/internal/generate"
	"github.com/pdiddy/flashcard-engine/pkg/types"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage flashcard decks",
	Long: `Deck manages decks of flashcards stored in a local SQLite database.
Use "deck create --generate" to create a deck and fill it with AI-generated
cards in one step.`,
}

var deckCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a deck, optionally generating its first cards",
	RunE:  runDeckCreate,
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDeckList,
}

var deckShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a deck and its cards",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckShow,
}

var deckDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a deck and its cards",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckDelete,
}

var deckExportCmd = &cobra.Command{
	Use:   "export ID",
	Short: "Export a deck as YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckShow,
}

func init() {
	f := deckCreateCmd.Flags()
	f.String("title", "", "deck title (required)")
	f.String("topic", "", "deck topic (required)")
	f.String("description", "", "optional description")
	f.Bool("generate", false, "generate cards for the topic after creating the deck")
	f.Int("count", 10, "number of cards to generate with --generate")
	f.String("difficulty", "intermediate", "difficulty for --generate")
	_ = deckCreateCmd.MarkFlagRequired("title")
	_ = deckCreateCmd.MarkFlagRequired("topic")

	deckExportCmd.Flags().String("format", "yaml", "output format: yaml or json")

	deckCmd.AddCommand(deckCreateCmd, deckListCmd, deckShowCmd, deckDeleteCmd, deckExportCmd)
	rootCmd.AddCommand(deckCmd)
}

func runDeckCreate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	topic, _ := cmd.Flags().GetString("topic")
	description, _ := cmd.Flags().GetString("description")
	withCards, _ := cmd.Flags().GetBool("generate")
	count, _ := cmd.Flags().GetInt("count")
	difficulty, _ := cmd.Flags().GetString("difficulty")

	ctx := cmd.Context()

	// Validate generation inputs before anything is written.
	var req types.GenerationRequest
	if withCards {
		d, err := types.ParseDifficulty(difficulty)
		if err != nil {
			return err
		}
		if req, err = types.NewGenerationRequest(topic, count, d); err != nil {
			return err
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	d, err := store.CreateDeck(ctx, title, description, topic)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created deck %d %q\n", d.ID, d.Title)

	if !withCards {
		return nil
	}

	gen, err := newGenerator(ctx, generationConfig(), nil)
	if err != nil {
		return err
	}
	res, n, err := store.GenerateCards(ctx, gen, d.ID, req)
	if err != nil {
		return fmt.Errorf("deck %d was created without cards: %w", d.ID, err)
	}
	reportResult(cmd.ErrOrStderr(), res, req)
	fmt.Fprintf(cmd.OutOrStdout(), "added %d flashcards to deck %d\n", n, d.ID)
	return nil
}

func runDeckList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	decks, err := store.ListDecks(cmd.Context())
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no decks")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTOPIC\tCARDS\tCREATED")
	for _, d := range decks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", d.ID, d.Title, d.Topic, d.CardCount, d.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// runDeckShow serves both show and export; show always prints YAML.
func runDeckShow(cmd *cobra.Command, args []string) error {
	id, err := parseDeckID(args[0])
	if err != nil {
		return err
	}
	format := deck.FormatYAML
	if f := cmd.Flags().Lookup("format"); f != nil {
		format = deck.Format(f.Value.String())
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Export(cmd.Context(), cmd.OutOrStdout(), id, format)
}

func runDeckDelete(cmd *cobra.Command, args []string) error {
	id, err := parseDeckID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteDeck(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted deck %d\n", id)
	return nil
}

func parseDeckID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid deck ID %q", s)
	}
	return id, nil
}

var _ deck.CardGenerator = (*generate.Generator)(nil)
