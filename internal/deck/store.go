// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck persists flashcard decks in SQLite and fills them with
// generated cards.
package deck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

const (
	// DefaultPath is the database file used when none is configured.
	DefaultPath = "data/flashcards.db"

	// timeLayout is fixed width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

var (
	// ErrNotFound is returned when a deck ID does not exist.
	ErrNotFound = errors.New("deck not found")

	// ErrInvalidDeck is wrapped by deck validation errors.
	ErrInvalidDeck = errors.New("invalid deck")
)

// Store manages the deck SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at cfg.Path and creates the schema
// if it does not exist.
func Open(cfg types.DeckStoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS decks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			topic TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS flashcards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			deck_id INTEGER NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_flashcards_deck_id ON flashcards(deck_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CreateDeck inserts a deck and returns it with its ID and timestamps set.
// Title and topic are required.
func (s *Store) CreateDeck(ctx context.Context, title, description, topic string) (types.Deck, error) {
	title = strings.TrimSpace(title)
	topic = strings.TrimSpace(topic)
	if title == "" {
		return types.Deck{}, fmt.Errorf("%w: title is required", ErrInvalidDeck)
	}
	if topic == "" {
		return types.Deck{}, fmt.Errorf("%w: topic is required", ErrInvalidDeck)
	}

	now := s.now()
	ts := now.Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (title, description, topic, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		title, nullable(description), topic, ts, ts,
	)
	if err != nil {
		return types.Deck{}, fmt.Errorf("inserting deck: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Deck{}, fmt.Errorf("reading deck id: %w", err)
	}

	return types.Deck{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(description),
		Topic:       topic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// AddCards appends items to a deck in one transaction and returns the
// number inserted.
func (s *Store) AddCards(ctx context.Context, deckID int64, items []types.GeneratedItem) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deckExists(ctx, tx, deckID); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO flashcards (deck_id, question, answer, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	ts := s.now().Format(timeLayout)
	for i, it := range items {
		if _, err := stmt.ExecContext(ctx, deckID, it.Question, it.Answer, ts); err != nil {
			return 0, fmt.Errorf("inserting card %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE decks SET updated_at = ? WHERE id = ?`, ts, deckID); err != nil {
		return 0, fmt.Errorf("touching deck: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing cards: %w", err)
	}
	return len(items), nil
}

// Deck loads a deck and its cards in insertion order.
func (s *Store) Deck(ctx context.Context, id int64) (types.Deck, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, topic, created_at, updated_at FROM decks WHERE id = ?`, id)
	d, err := scanDeck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Deck{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return types.Deck{}, fmt.Errorf("loading deck %d: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, deck_id, question, answer, created_at FROM flashcards WHERE deck_id = ? ORDER BY id`, id)
	if err != nil {
		return types.Deck{}, fmt.Errorf("loading cards for deck %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c       types.Flashcard
			created string
		)
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &created); err != nil {
			return types.Deck{}, fmt.Errorf("scanning card: %w", err)
		}
		c.CreatedAt = parseTime(created)
		d.Cards = append(d.Cards, c)
	}
	return d, rows.Err()
}

// DeckSummary is a deck without its cards plus the card count.
type DeckSummary struct {
	types.Deck `yaml:",inline"`
	CardCount  int `json:"card_count" yaml:"card_count"`
}

// ListDecks returns every deck, newest first.
func (s *Store) ListDecks(ctx context.Context) ([]DeckSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.title, d.description, d.topic, d.created_at, d.updated_at, COUNT(f.id)
		 FROM decks d LEFT JOIN flashcards f ON f.deck_id = d.id
		 GROUP BY d.id ORDER BY d.created_at DESC, d.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing decks: %w", err)
	}
	defer rows.Close()

	var out []DeckSummary
	for rows.Next() {
		var (
			sum              DeckSummary
			desc             sql.NullString
			created, updated string
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &desc, &sum.Topic, &created, &updated, &sum.CardCount); err != nil {
			return nil, fmt.Errorf("scanning deck: %w", err)
		}
		sum.Description = desc.String
		sum.CreatedAt = parseTime(created)
		sum.UpdatedAt = parseTime(updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteDeck removes a deck and, through the foreign key, its cards.
func (s *Store) DeleteDeck(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting deck %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting deck %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

func deckExists(ctx context.Context, tx *sql.Tx, id int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM decks WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("checking deck %d: %w", id, err)
	}
	return nil
}

func scanDeck(row *sql.Row) (types.Deck, error) {
	var (
		d                types.Deck
		desc             sql.NullString
		created, updated string
	)
	if err := row.Scan(&d.ID, &d.Title, &desc, &d.Topic, &created, &updated); err != nil {
		return types.Deck{}, err
	}
	d.Description = desc.String
	d.CreatedAt = parseTime(created)
	d.UpdatedAt = parseTime(updated)
	return d, nil
}

func nullable(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
