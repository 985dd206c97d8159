// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"context"
	"fmt"

	"github.com/pdiddy/flashcard-engine/internal/generate"
	"github.com/pdiddy/flashcard-engine/pkg/types"
)

// CardGenerator is satisfied by *generate.Generator.
type CardGenerator interface {
	Generate(ctx context.Context, req types.GenerationRequest, opts ...generate.CallOption) (generate.Result, error)
}

// GenerateCards generates cards for req and appends them to the deck.
// The deck must exist before any provider call is made. Placeholder cards
// from a fallback are stored like any other card.
func (s *Store) GenerateCards(ctx context.Context, gen CardGenerator, deckID int64, req types.GenerationRequest, opts ...generate.CallOption) (generate.Result, int, error) {
	if _, err := s.Deck(ctx, deckID); err != nil {
		return generate.Result{}, 0, err
	}

	res, err := gen.Generate(ctx, req, opts...)
	if err != nil {
		return generate.Result{}, 0, fmt.Errorf("generating flashcards for deck %d: %w", deckID, err)
	}

	n, err := s.AddCards(ctx, deckID, res.Items)
	if err != nil {
		return res, 0, err
	}
	return res, n, nil
}
