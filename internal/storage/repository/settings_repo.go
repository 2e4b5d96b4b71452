package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrSettingNotFound is returned when a settings key has no stored value.
var ErrSettingNotFound = errors.New("setting not found")

// Well-known settings keys.
const (
	KeyPlayerAliases   = "player_aliases"
	KeyRankWeights     = "rank_weights"
	KeyIgnoreLandCards = "ignore_lands_cards"
)

// SettingsRepository provides access to persisted admin settings.
type SettingsRepository interface {
	// Get retrieves the JSON-encoded value for a key.
	Get(ctx context.Context, key string) (string, error)

	// GetTyped retrieves a setting and unmarshals it into target.
	GetTyped(ctx context.Context, key string, target interface{}) error

	// Set stores a value, JSON-encoding it first.
	Set(ctx context.Context, key string, value interface{}) error

	// Delete removes a setting. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the JSON-encoded value for a key.
func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// GetTyped retrieves a setting and unmarshals it into target.
func (r *settingsRepository) GetTyped(ctx context.Context, key string, target interface{}) error {
	value, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		return fmt.Errorf("failed to unmarshal setting %s: %w", key, err)
	}
	return nil
}

// Set stores a value, JSON-encoding it first.
func (r *settingsRepository) Set(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal setting %s: %w", key, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(jsonValue), time.Now())
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a setting.
func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}
