// Package main runs the metagame analytics REST API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pdelgado/mtg-metagame/internal/api"
	"github.com/pdelgado/mtg-metagame/internal/api/auth"
	"github.com/pdelgado/mtg-metagame/internal/config"
	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
	"github.com/pdelgado/mtg-metagame/internal/storage"
)

var (
	port         = flag.Int("port", 0, "API server port (overrides config)")
	configPath   = flag.String("config", "", "Config file path (default: ~/.mtg-metagame/config.toml)")
	dbPath       = flag.String("db-path", "", "Database path (overrides config)")
	decksFile    = flag.String("decks-file", "", "Decks JSON file to load at startup (overrides config)")
	watchDecks   = flag.Bool("watch", false, "Reload the decks file when it changes on disk")
	hashPassword = flag.String("hash-password", "", "Print the bcrypt hash of the given admin password and exit")
)

func main() {
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	fmt.Println("MTG Metagame - REST API Server")
	fmt.Println("==============================")
	fmt.Println()

	finalDBPath := cfg.Data.DatabasePath
	if finalDBPath == "" {
		finalDBPath, err = cfg.DefaultDatabasePath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
	}
	fmt.Printf("Database: %s\n", finalDBPath)

	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	storageService := storage.NewService(db)
	defer func() {
		if err := storageService.Close(); err != nil {
			log.Printf("Error closing storage service: %v", err)
		}
	}()

	ctx := context.Background()

	store := settings.NewStore()
	if err := storageService.LoadConfiguration(ctx, store); err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	corpus := deck.NewCorpus()
	if err := loadCorpus(ctx, cfg, corpus, storageService); err != nil {
		log.Fatalf("Failed to load decks: %v", err)
	}
	fmt.Printf("Corpus: %d decks\n", corpus.Len())

	ttl, err := cfg.GetTokenTTL()
	if err != nil {
		log.Fatalf("Invalid token TTL: %v", err)
	}
	authService := auth.NewService(cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, ttl)
	if !authService.Enabled() {
		fmt.Println("Admin login disabled (no password hash configured)")
	}

	apiConfig := &api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	server := api.NewServer(apiConfig, corpus, store, storageService, authService)

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	var watcher *deck.Watcher
	if cfg.Data.WatchDecks && cfg.Data.DecksFile != "" {
		watcher = deck.NewWatcher(cfg.Data.DecksFile, corpus, func(loaded, skipped int) {
			if err := storageService.Decks.ReplaceAll(ctx, corpus.Decks()); err != nil {
				log.Printf("Failed to persist reloaded corpus: %v", err)
			}
		})
		go func() {
			if err := watcher.Start(ctx); err != nil && err != context.Canceled {
				log.Printf("Decks watcher stopped: %v", err)
			}
		}()
		fmt.Printf("Watching %s for changes\n", cfg.Data.DecksFile)
	}

	fmt.Println()
	fmt.Printf("API server running at http://localhost:%d\n", cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")

	if watcher != nil {
		watcher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("API server stopped.")
}

func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.LoadFrom(*configPath)
	}
	return config.Load()
}

// applyFlags overlays command-line flags onto the loaded config.
func applyFlags(cfg *config.Config) {
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Data.DatabasePath = *dbPath
	}
	if *decksFile != "" {
		cfg.Data.DecksFile = *decksFile
	}
	if *watchDecks {
		cfg.Data.WatchDecks = true
	}
}

// loadCorpus fills the corpus from the configured decks file when one
// is set (persisting the result), otherwise from the database.
func loadCorpus(ctx context.Context, cfg *config.Config, corpus *deck.Corpus, svc *storage.Service) error {
	if cfg.Data.DecksFile != "" {
		decks, err := deck.LoadFile(cfg.Data.DecksFile)
		if err != nil {
			return err
		}
		loaded, skipped := corpus.Replace(decks)
		log.Printf("Loaded %d decks from %s (%d skipped)", loaded, cfg.Data.DecksFile, skipped)
		if err := svc.Decks.ReplaceAll(ctx, corpus.Decks()); err != nil {
			log.Printf("Failed to persist corpus: %v", err)
		}
		return nil
	}

	decks, err := svc.Decks.LoadAll(ctx)
	if err != nil {
		return err
	}
	loaded, skipped := corpus.Replace(decks)
	if skipped > 0 {
		log.Printf("Loaded %d decks from database (%d skipped)", loaded, skipped)
	}
	return nil
}
