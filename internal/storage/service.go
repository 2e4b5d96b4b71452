package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pdelgado/mtg-metagame/internal/settings"
	"github.com/pdelgado/mtg-metagame/internal/storage/repository"
)

// Service bundles the repositories behind one handle and carries the
// load/save glue between the database and the in-memory configuration
// store.
type Service struct {
	db       *DB
	Decks    repository.DeckRepository
	Settings repository.SettingsRepository
	Cards    repository.CardRepository
}

// NewService creates repositories over an open database.
func NewService(db *DB) *Service {
	conn := db.Conn()
	return &Service{
		db:       db,
		Decks:    repository.NewDeckRepository(conn),
		Settings: repository.NewSettingsRepository(conn),
		Cards:    repository.NewCardRepository(conn),
	}
}

// Close closes the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}

// LoadConfiguration seeds the settings store from persisted values.
// Missing keys keep their built-in defaults; a corrupt value is logged
// and skipped rather than failing startup.
func (s *Service) LoadConfiguration(ctx context.Context, store *settings.Store) error {
	var aliases settings.AliasMap
	switch err := s.Settings.GetTyped(ctx, repository.KeyPlayerAliases, &aliases); {
	case err == nil:
		if err := store.SetAliases(aliases); err != nil {
			log.Printf("storage: ignoring persisted player aliases: %v", err)
		}
	case !errors.Is(err, repository.ErrSettingNotFound):
		return fmt.Errorf("load player aliases: %w", err)
	}

	var weights settings.RankWeights
	switch err := s.Settings.GetTyped(ctx, repository.KeyRankWeights, &weights); {
	case err == nil:
		if err := store.SetRankWeights(weights); err != nil {
			log.Printf("storage: ignoring persisted rank weights: %v", err)
		}
	case !errors.Is(err, repository.ErrSettingNotFound):
		return fmt.Errorf("load rank weights: %w", err)
	}

	var ignoreCards []string
	switch err := s.Settings.GetTyped(ctx, repository.KeyIgnoreLandCards, &ignoreCards); {
	case err == nil:
		store.SetIgnoreLands(ignoreCards)
	case !errors.Is(err, repository.ErrSettingNotFound):
		return fmt.Errorf("load ignore-lands cards: %w", err)
	}

	return nil
}

// SaveAliases persists the current alias snapshot.
func (s *Service) SaveAliases(ctx context.Context, store *settings.Store) error {
	return s.Settings.Set(ctx, repository.KeyPlayerAliases, store.Aliases())
}

// SaveRankWeights persists the current weight table snapshot.
func (s *Service) SaveRankWeights(ctx context.Context, store *settings.Store) error {
	return s.Settings.Set(ctx, repository.KeyRankWeights, store.RankWeights())
}

// SaveIgnoreLands persists the current ignore-lands card list.
func (s *Service) SaveIgnoreLands(ctx context.Context, store *settings.Store) error {
	return s.Settings.Set(ctx, repository.KeyIgnoreLandCards, store.IgnoreLandsList())
}
