package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pdelgado/mtg-metagame/internal/api/handlers"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	systemHandler := handlers.NewSystemHandler(s.corpus, s.storage)
	authHandler := handlers.NewAuthHandler(s.auth)
	deckHandler := handlers.NewDeckHandler(s.corpus, s.store, s.storage.Cards)
	metaHandler := handlers.NewMetagameHandler(s.corpus, s.store, s.storage.Cards)
	playerHandler := handlers.NewPlayerHandler(s.corpus, s.store)
	settingsHandler := handlers.NewSettingsHandler(s.store, s.storage)
	cardHandler := handlers.NewCardHandler(s.storage.Cards)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", systemHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Get("/compare", deckHandler.CompareDecks)
			r.Get("/duplicates", deckHandler.ListDuplicates)
			r.Get("/{deckID}", deckHandler.GetDeck)
			r.Get("/{deckID}/similar", deckHandler.SimilarDecks)
			r.Get("/{deckID}/analysis", deckHandler.DeckAnalysis)
		})

		r.Get("/date-range", systemHandler.DateRange)
		r.Get("/format-info", systemHandler.FormatInfo)
		r.Get("/events", systemHandler.Events)

		r.Get("/metagame", metaHandler.GetMetagame)
		r.Get("/metagame/synergy", metaHandler.Synergy)
		r.Get("/archetypes/{archetype}", metaHandler.GetArchetypeProfile)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.Leaderboard)
			r.Get("/similar", playerHandler.SimilarPlayers)
			r.Get("/{playerName}", playerHandler.PlayerDetail)
		})

		r.Get("/player-aliases", settingsHandler.GetPlayerAliases)

		r.Route("/cards", func(r chi.Router) {
			r.Post("/lookup", cardHandler.Lookup)
			r.With(s.auth.RequireAdmin).Post("/upload", cardHandler.Upload)
		})

		// Admin-only mutations
		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)

			r.Post("/load", systemHandler.LoadCorpus)
			r.Get("/export", systemHandler.ExportCorpus)

			r.Get("/settings/ignore-lands-cards", settingsHandler.GetIgnoreLandsCards)
			r.Put("/settings/ignore-lands-cards", settingsHandler.PutIgnoreLandsCards)
			r.Get("/settings/rank-weights", settingsHandler.GetRankWeights)
			r.Put("/settings/rank-weights", settingsHandler.PutRankWeights)

			r.Post("/player-aliases", settingsHandler.AddPlayerAlias)
			r.Delete("/player-aliases/{alias}", settingsHandler.RemovePlayerAlias)
		})
	})
}
