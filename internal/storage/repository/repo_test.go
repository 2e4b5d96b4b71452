package repository

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory database with the necessary schema for testing.
func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE decks (
			deck_id      INTEGER PRIMARY KEY,
			event_id     INTEGER NOT NULL,
			format_id    TEXT NOT NULL DEFAULT '',
			name         TEXT NOT NULL DEFAULT '',
			player       TEXT NOT NULL DEFAULT '',
			event_name   TEXT NOT NULL DEFAULT '',
			event_date   TEXT NOT NULL DEFAULT '',
			rank         TEXT NOT NULL DEFAULT '',
			player_count INTEGER NOT NULL DEFAULT 0,
			mainboard    TEXT NOT NULL DEFAULT '[]',
			sideboard    TEXT NOT NULL DEFAULT '[]',
			commanders   TEXT NOT NULL DEFAULT '[]',
			archetype    TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE card_attributes (
			name           TEXT PRIMARY KEY,
			mana_cost      TEXT NOT NULL DEFAULT '',
			cmc            REAL NOT NULL DEFAULT 0,
			type_line      TEXT NOT NULL DEFAULT '',
			colors         TEXT NOT NULL DEFAULT '[]',
			color_identity TEXT NOT NULL DEFAULT '[]'
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
