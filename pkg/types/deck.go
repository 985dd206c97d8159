// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Deck is a named collection of flashcards about one topic.
type Deck struct {
	ID          int64     `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Topic       string    `json:"topic" yaml:"topic"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`

	// Cards is populated only when the deck is loaded with its flashcards.
	Cards []Flashcard `json:"cards,omitempty" yaml:"cards,omitempty"`
}

// Flashcard is a persisted GeneratedItem.
type Flashcard struct {
	ID        int64     `json:"id" yaml:"id"`
	DeckID    int64     `json:"deck_id" yaml:"deck_id"`
	Question  string    `json:"question" yaml:"question"`
	Answer    string    `json:"answer" yaml:"answer"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
