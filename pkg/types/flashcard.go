// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidRequest is wrapped by every GenerationRequest construction error.
var ErrInvalidRequest = errors.New("invalid generation request")

const (
	// MinQuestionLength is the minimum number of characters in a question.
	MinQuestionLength = 5

	// MinAnswerLength is the minimum number of characters in an answer.
	MinAnswerLength = 3
)

// Difficulty selects the pitch of generated flashcards.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty converts a user-supplied string into a Difficulty.
// An empty string yields DifficultyIntermediate.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DifficultyIntermediate, nil
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, s)
	}
}

// GenerationRequest describes one batch of flashcards to generate.
// Construct it with NewGenerationRequest; the pipeline never mutates it.
type GenerationRequest struct {
	// Topic is the subject the flashcards are about.
	Topic string `json:"topic" yaml:"topic"`

	// Count is the number of flashcards requested.
	Count int `json:"count" yaml:"count"`

	// Difficulty is the requested pitch of the questions.
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
}

// NewGenerationRequest validates its inputs and returns a normalized request.
func NewGenerationRequest(topic string, count int, difficulty Difficulty) (GenerationRequest, error) {
	return GenerationRequest{Topic: topic, Count: count, Difficulty: difficulty}.Normalize()
}

// Normalize trims the topic and replaces the difficulty with its canonical
// lower-case form, defaulting to intermediate. Invalid requests return an
// error wrapping ErrInvalidRequest.
func (r GenerationRequest) Normalize() (GenerationRequest, error) {
	if err := r.Validate(); err != nil {
		return GenerationRequest{}, err
	}
	d, err := ParseDifficulty(string(r.Difficulty))
	if err != nil {
		return GenerationRequest{}, err
	}
	r.Topic = strings.TrimSpace(r.Topic)
	r.Difficulty = d
	return r, nil
}

// Validate reports whether the request can be sent to the pipeline.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	if r.Count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRequest, r.Count)
	}
	if _, err := ParseDifficulty(string(r.Difficulty)); err != nil {
		return err
	}
	return nil
}

// GeneratedItem is one question/answer pair produced by a provider or by
// the fallback synthesizer.
type GeneratedItem struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Validate checks the minimum question and answer lengths.
func (it GeneratedItem) Validate() error {
	if n := utf8.RuneCountInString(strings.TrimSpace(it.Question)); n < MinQuestionLength {
		return fmt.Errorf("question must be at least %d characters, got %d", MinQuestionLength, n)
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(it.Answer)); n < MinAnswerLength {
		return fmt.Errorf("answer must be at least %d characters, got %d", MinAnswerLength, n)
	}
	return nil
}
