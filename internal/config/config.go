// Package config loads and saves the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Data storage configuration
	Data DataConfig `toml:"data"`

	// Admin authentication configuration
	Admin AdminConfig `toml:"admin"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int      `toml:"port"`            // Listen port
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins
}

// DataConfig contains corpus and database settings.
type DataConfig struct {
	DatabasePath string `toml:"database_path"` // SQLite database path
	DecksFile    string `toml:"decks_file"`    // Optional decks JSON to load at startup
	WatchDecks   bool   `toml:"watch_decks"`   // Reload the decks file when it changes
}

// AdminConfig contains admin authentication settings.
type AdminConfig struct {
	PasswordHash string `toml:"password_hash"` // bcrypt hash; empty disables admin login
	JWTSecret    string `toml:"jwt_secret"`    // Token signing secret
	TokenTTL     string `toml:"token_ttl"`     // Token lifetime (e.g. "168h")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Data: DataConfig{
			DatabasePath: "",
			DecksFile:    "",
			WatchDecks:   false,
		},
		Admin: AdminConfig{
			PasswordHash: "",
			JWTSecret:    "",
			TokenTTL:     "168h",
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".mtg-metagame")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the default location. Returns the
// default config if no file exists yet.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default location.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if _, err := time.ParseDuration(c.Admin.TokenTTL); err != nil {
		return fmt.Errorf("invalid token TTL %q: %w", c.Admin.TokenTTL, err)
	}
	return nil
}

// GetTokenTTL returns the admin token lifetime as a duration.
func (c *Config) GetTokenTTL() (time.Duration, error) {
	return time.ParseDuration(c.Admin.TokenTTL)
}

// DefaultDatabasePath returns the database path, defaulting to
// ~/.mtg-metagame/data.db when unset.
func (c *Config) DefaultDatabasePath() (string, error) {
	if c.Data.DatabasePath != "" {
		return c.Data.DatabasePath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".mtg-metagame", "data.db"), nil
}
