package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pdelgado/mtg-metagame/internal/cards"
)

// CardRepository persists the card attribute cache.
type CardRepository interface {
	// UpsertMany stores or updates a batch of card attributes.
	UpsertMany(ctx context.Context, attrs []cards.Attributes) error

	// GetMany returns the cached attributes for the given names.
	// Unknown names are simply absent from the result.
	GetMany(ctx context.Context, names []string) (cards.Map, error)

	// LoadAll returns the whole attribute cache.
	LoadAll(ctx context.Context) (cards.Map, error)
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new card attribute repository.
func NewCardRepository(db *sql.DB) CardRepository {
	return &cardRepository{db: db}
}

// UpsertMany stores or updates a batch of card attributes.
func (r *cardRepository) UpsertMany(ctx context.Context, attrs []cards.Attributes) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO card_attributes (name, mana_cost, cmc, type_line, colors, color_identity)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			mana_cost = excluded.mana_cost,
			cmc = excluded.cmc,
			type_line = excluded.type_line,
			colors = excluded.colors,
			color_identity = excluded.color_identity
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare card upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, a := range attrs {
		if a.Name == "" {
			continue
		}
		colors, err := json.Marshal(a.Colors)
		if err != nil {
			return fmt.Errorf("failed to marshal colors of %q: %w", a.Name, err)
		}
		identity, err := json.Marshal(a.Identity)
		if err != nil {
			return fmt.Errorf("failed to marshal color identity of %q: %w", a.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, a.Name, a.ManaCost, a.CMC, a.TypeLine, string(colors), string(identity)); err != nil {
			return fmt.Errorf("failed to upsert card %q: %w", a.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit card upsert: %w", err)
	}
	return nil
}

func scanCards(rows *sql.Rows) (cards.Map, error) {
	out := make(cards.Map)
	for rows.Next() {
		var a cards.Attributes
		var colors, identity string
		if err := rows.Scan(&a.Name, &a.ManaCost, &a.CMC, &a.TypeLine, &colors, &identity); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		if err := json.Unmarshal([]byte(colors), &a.Colors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal colors of %q: %w", a.Name, err)
		}
		if err := json.Unmarshal([]byte(identity), &a.Identity); err != nil {
			return nil, fmt.Errorf("failed to unmarshal color identity of %q: %w", a.Name, err)
		}
		out[a.Name] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card rows: %w", err)
	}
	return out, nil
}

const selectCardSQL = "SELECT name, mana_cost, cmc, type_line, colors, color_identity FROM card_attributes"

// GetMany returns the cached attributes for the given names.
func (r *cardRepository) GetMany(ctx context.Context, names []string) (cards.Map, error) {
	if len(names) == 0 {
		return cards.Map{}, nil
	}

	// Query in chunks to stay under SQLite's bound-parameter limit.
	const chunkSize = 500
	out := make(cards.Map)
	for from := 0; from < len(names); from += chunkSize {
		to := from + chunkSize
		if to > len(names) {
			to = len(names)
		}
		chunk := names[from:to]

		placeholders := ""
		args := make([]interface{}, len(chunk))
		for i, n := range chunk {
			if i > 0 {
				placeholders += ","
			}
			placeholders += "?"
			args[i] = n
		}
		rows, err := r.db.QueryContext(ctx, selectCardSQL+" WHERE name IN ("+placeholders+")", args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query card attributes: %w", err)
		}
		got, err := scanCards(rows)
		_ = rows.Close()
		if err != nil {
			return nil, err
		}
		for name, a := range got {
			out[name] = a
		}
	}
	return out, nil
}

// LoadAll returns the whole attribute cache.
func (r *cardRepository) LoadAll(ctx context.Context) (cards.Map, error) {
	rows, err := r.db.QueryContext(ctx, selectCardSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query card attributes: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanCards(rows)
}
