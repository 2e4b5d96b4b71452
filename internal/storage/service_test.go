package storage

import (
	"context"
	"reflect"
	"testing"

	"github.com/pdelgado/mtg-metagame/internal/settings"
	"github.com/pdelgado/mtg-metagame/internal/storage/repository"
)

// openTestService opens an in-memory database with the schema applied.
// A single connection keeps the pool on one :memory: instance.
func openTestService(t *testing.T) *Service {
	cfg := DefaultConfig(":memory:")
	cfg.MaxOpenConns = 1
	cfg.MaxIdleConns = 1

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema := `
		CREATE TABLE settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Conn().Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
	return NewService(db)
}

func TestLoadConfigurationDefaults(t *testing.T) {
	svc := openTestService(t)
	store := settings.NewStore()

	if err := svc.LoadConfiguration(context.Background(), store); err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	// Nothing persisted: the built-in defaults survive.
	if got := store.RankWeights().Weight("1"); got != 8 {
		t.Errorf("Weight(1) = %v, want default 8", got)
	}
	if !store.IgnoreLands()["Island"] {
		t.Error("default ignore-lands set should contain Island")
	}
}

func TestLoadConfigurationPersistedValues(t *testing.T) {
	svc := openTestService(t)
	ctx := context.Background()

	seed := settings.NewStore()
	if err := seed.AddAlias("J. Smith", "John Smith"); err != nil {
		t.Fatalf("AddAlias() error = %v", err)
	}
	seed.SetIgnoreLands([]string{"Wastes"})
	if err := svc.SaveAliases(ctx, seed); err != nil {
		t.Fatalf("SaveAliases() error = %v", err)
	}
	if err := svc.SaveIgnoreLands(ctx, seed); err != nil {
		t.Fatalf("SaveIgnoreLands() error = %v", err)
	}
	if err := svc.SaveRankWeights(ctx, seed); err != nil {
		t.Fatalf("SaveRankWeights() error = %v", err)
	}

	store := settings.NewStore()
	if err := svc.LoadConfiguration(ctx, store); err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if got := store.ResolvePlayer("J. Smith"); got != "John Smith" {
		t.Errorf("ResolvePlayer() = %q after reload", got)
	}
	if !reflect.DeepEqual(store.IgnoreLandsList(), []string{"Wastes"}) {
		t.Errorf("IgnoreLandsList() = %v after reload", store.IgnoreLandsList())
	}
}

func TestLoadConfigurationSkipsCorruptValues(t *testing.T) {
	svc := openTestService(t)
	ctx := context.Background()

	// A weight table with a negative entry fails store validation; the
	// load logs and keeps defaults instead of failing startup.
	if err := svc.Settings.Set(ctx, repository.KeyRankWeights, map[string]float64{"1": -5}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	store := settings.NewStore()
	if err := svc.LoadConfiguration(ctx, store); err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if got := store.RankWeights().Weight("1"); got != 8 {
		t.Errorf("Weight(1) = %v, want default kept", got)
	}
}
