// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerationRequest(t *testing.T) {
	tests := []struct {
		name       string
		topic      string
		count      int
		difficulty Difficulty
		want       GenerationRequest
		wantErr    bool
	}{
		{
			name:  "defaults difficulty and trims topic",
			topic: "  Cell biology ",
			count: 10,
			want:  GenerationRequest{Topic: "Cell biology", Count: 10, Difficulty: DifficultyIntermediate},
		},
		{
			name:       "explicit difficulty",
			topic:      "Calculus",
			count:      3,
			difficulty: DifficultyAdvanced,
			want:       GenerationRequest{Topic: "Calculus", Count: 3, Difficulty: DifficultyAdvanced},
		},
		{
			name:       "upper-case difficulty is canonicalized",
			topic:      "Go",
			count:      2,
			difficulty: "ADVANCED",
			want:       GenerationRequest{Topic: "Go", Count: 2, Difficulty: DifficultyAdvanced},
		},
		{name: "empty topic", topic: "   ", count: 3, wantErr: true},
		{name: "zero count", topic: "Calculus", count: 0, wantErr: true},
		{name: "negative count", topic: "Calculus", count: -2, wantErr: true},
		{name: "unknown difficulty", topic: "Calculus", count: 1, difficulty: "expert", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewGenerationRequest(tt.topic, tt.count, tt.difficulty)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerationRequestNormalize(t *testing.T) {
	got, err := GenerationRequest{Topic: " Go ", Count: 2}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, GenerationRequest{Topic: "Go", Count: 2, Difficulty: DifficultyIntermediate}, got)

	got, err = GenerationRequest{Topic: "Go", Count: 2, Difficulty: " Beginner"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, DifficultyBeginner, got.Difficulty)

	_, err = GenerationRequest{Topic: "Go", Count: 0}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("Beginner")
	require.NoError(t, err)
	assert.Equal(t, DifficultyBeginner, d)

	d, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyIntermediate, d)

	_, err = ParseDifficulty("hard")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGeneratedItemValidate(t *testing.T) {
	assert.NoError(t, GeneratedItem{Question: "What?!", Answer: "Yes"}.Validate())
	assert.Error(t, GeneratedItem{Question: "Why?", Answer: "Because"}.Validate())
	assert.Error(t, GeneratedItem{Question: "What is it?", Answer: "no"}.Validate())
	assert.Error(t, GeneratedItem{Question: "   What   ", Answer: "yes"}.Validate(), "whitespace does not count")
}
