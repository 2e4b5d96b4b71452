package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Admin.PasswordHash != "" {
		t.Error("admin login should be disabled by default")
	}
	ttl, err := cfg.GetTokenTTL()
	if err != nil {
		t.Fatalf("GetTokenTTL() error = %v", err)
	}
	if ttl != 168*time.Hour {
		t.Errorf("TokenTTL = %v, want 168h", ttl)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("missing file should yield defaults, got port %d", cfg.Server.Port)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 9090
allowed_origins = ["https://example.com"]

[data]
database_path = "/tmp/meta.db"
watch_decks = true

[admin]
password_hash = "bcrypt-hash"
token_ttl = "24h"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if !cfg.Data.WatchDecks || cfg.Data.DatabasePath != "/tmp/meta.db" {
		t.Errorf("data config = %+v", cfg.Data)
	}
	if cfg.Admin.TokenTTL != "24h" {
		t.Errorf("TokenTTL = %q", cfg.Admin.TokenTTL)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Admin.JWTSecret != "" {
		t.Errorf("JWTSecret = %q, want empty default", cfg.Admin.JWTSecret)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad ttl", func(c *Config) { c.Admin.TokenTTL = "soon" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DatabasePath = "/data/meta.db"
	path, err := cfg.DefaultDatabasePath()
	if err != nil {
		t.Fatalf("DefaultDatabasePath() error = %v", err)
	}
	if path != "/data/meta.db" {
		t.Errorf("path = %q, want the configured value", path)
	}

	cfg.Data.DatabasePath = ""
	path, err = cfg.DefaultDatabasePath()
	if err != nil {
		t.Fatalf("DefaultDatabasePath() error = %v", err)
	}
	if filepath.Base(path) != "data.db" {
		t.Errorf("fallback path = %q", path)
	}
}
