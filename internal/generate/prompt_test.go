// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		difficulty types.Difficulty
		guideline  string
	}{
		{types.DifficultyBeginner, "Focus on basic concepts and definitions"},
		{types.DifficultyIntermediate, "Mix definitions with conceptual understanding"},
		{types.DifficultyAdvanced, "Focus on synthesis and evaluation"},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			req, err := types.NewGenerationRequest("The French Revolution", 12, tt.difficulty)
			require.NoError(t, err)

			prompt, err := BuildPrompt(req)
			require.NoError(t, err)

			assert.Contains(t, prompt, `Generate exactly 12 flashcards about: "The French Revolution"`)
			assert.Contains(t, prompt, "Difficulty level: "+string(tt.difficulty))
			assert.Contains(t, prompt, "For "+string(tt.difficulty)+" level:")
			assert.Contains(t, prompt, tt.guideline)
			assert.Contains(t, prompt, `"flashcards" array`)
		})
	}
}

func TestDifficultyGuidelines_Unknown(t *testing.T) {
	assert.Equal(t, "- Balance between recall and understanding", DifficultyGuidelines("expert"))
}
