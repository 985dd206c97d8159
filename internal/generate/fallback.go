// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

const placeholderMarker = "The AI service was temporarily unavailable."

// Fallback returns exactly count placeholder flashcards about topic. Each
// card is derived only from its index and the topic, and its answer says
// it is a placeholder so a reviewer can find and replace it.
func Fallback(topic string, count int) []types.GeneratedItem {
	if count <= 0 {
		return []types.GeneratedItem{}
	}
	items := make([]types.GeneratedItem, count)
	for i := range items {
		n := i + 1
		items[i] = types.GeneratedItem{
			Question: fmt.Sprintf("Question %d: What is an important concept related to %s?", n, topic),
			Answer: fmt.Sprintf("This is a placeholder answer for question %d about %s. %s Please edit this card or regenerate the deck.",
				n, topic, placeholderMarker),
		}
	}
	return items
}

// IsPlaceholder reports whether item was produced by Fallback.
func IsPlaceholder(item types.GeneratedItem) bool {
	return strings.HasPrefix(item.Answer, "This is a placeholder answer") &&
		strings.Contains(item.Answer, placeholderMarker)
}
