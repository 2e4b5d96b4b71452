// Package repository provides SQLite-backed persistence for decks,
// settings, and card attributes.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pdelgado/mtg-metagame/internal/deck"
)

// DeckRepository persists the deck corpus.
type DeckRepository interface {
	// ReplaceAll atomically swaps the stored corpus for the given batch.
	ReplaceAll(ctx context.Context, decks []deck.Deck) error

	// AppendBatch inserts a batch, replacing rows with conflicting ids.
	AppendBatch(ctx context.Context, decks []deck.Deck) error

	// LoadAll returns every stored deck.
	LoadAll(ctx context.Context) ([]deck.Deck, error)

	// Count returns the number of stored decks.
	Count(ctx context.Context) (int, error)
}

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db *sql.DB) DeckRepository {
	return &deckRepository{db: db}
}

const insertDeckSQL = `
	INSERT INTO decks (deck_id, event_id, format_id, name, player, event_name, event_date, rank, player_count, mainboard, sideboard, commanders, archetype)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(deck_id) DO UPDATE SET
		event_id = excluded.event_id,
		format_id = excluded.format_id,
		name = excluded.name,
		player = excluded.player,
		event_name = excluded.event_name,
		event_date = excluded.event_date,
		rank = excluded.rank,
		player_count = excluded.player_count,
		mainboard = excluded.mainboard,
		sideboard = excluded.sideboard,
		commanders = excluded.commanders,
		archetype = excluded.archetype
`

func insertDecks(ctx context.Context, tx *sql.Tx, decks []deck.Deck) error {
	stmt, err := tx.PrepareContext(ctx, insertDeckSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare deck insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range decks {
		d := &decks[i]
		mainboard, err := json.Marshal(d.Mainboard)
		if err != nil {
			return fmt.Errorf("failed to marshal mainboard of deck %d: %w", d.ID, err)
		}
		sideboard, err := json.Marshal(d.Sideboard)
		if err != nil {
			return fmt.Errorf("failed to marshal sideboard of deck %d: %w", d.ID, err)
		}
		commanders, err := json.Marshal(d.Commanders)
		if err != nil {
			return fmt.Errorf("failed to marshal commanders of deck %d: %w", d.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			d.ID, d.EventID, d.FormatID, d.Name, d.Player, d.EventName,
			d.Date, d.Rank, d.PlayerCount,
			string(mainboard), string(sideboard), string(commanders), d.Archetype)
		if err != nil {
			return fmt.Errorf("failed to insert deck %d: %w", d.ID, err)
		}
	}
	return nil
}

// ReplaceAll atomically swaps the stored corpus for the given batch.
func (r *deckRepository) ReplaceAll(ctx context.Context, decks []deck.Deck) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM decks"); err != nil {
		return fmt.Errorf("failed to clear decks: %w", err)
	}
	if err := insertDecks(ctx, tx, decks); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck replace: %w", err)
	}
	return nil
}

// AppendBatch inserts a batch, replacing rows with conflicting ids.
func (r *deckRepository) AppendBatch(ctx context.Context, decks []deck.Deck) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertDecks(ctx, tx, decks); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck append: %w", err)
	}
	return nil
}

// LoadAll returns every stored deck.
func (r *deckRepository) LoadAll(ctx context.Context) ([]deck.Deck, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT deck_id, event_id, format_id, name, player, event_name, event_date, rank, player_count, mainboard, sideboard, commanders, archetype
		FROM decks ORDER BY deck_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var decks []deck.Deck
	for rows.Next() {
		var d deck.Deck
		var mainboard, sideboard, commanders string
		err := rows.Scan(&d.ID, &d.EventID, &d.FormatID, &d.Name, &d.Player, &d.EventName,
			&d.Date, &d.Rank, &d.PlayerCount, &mainboard, &sideboard, &commanders, &d.Archetype)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		if err := json.Unmarshal([]byte(mainboard), &d.Mainboard); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mainboard of deck %d: %w", d.ID, err)
		}
		if err := json.Unmarshal([]byte(sideboard), &d.Sideboard); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sideboard of deck %d: %w", d.ID, err)
		}
		if err := json.Unmarshal([]byte(commanders), &d.Commanders); err != nil {
			return nil, fmt.Errorf("failed to unmarshal commanders of deck %d: %w", d.ID, err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deck rows: %w", err)
	}
	return decks, nil
}

// Count returns the number of stored decks.
func (r *deckRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM decks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count decks: %w", err)
	}
	return n, nil
}
