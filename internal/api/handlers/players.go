package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/pdelgado/mtg-metagame/internal/analyzer"
	"github.com/pdelgado/mtg-metagame/internal/api/response"
	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
)

// PlayerHandler serves the player leaderboard and per-player detail.
type PlayerHandler struct {
	corpus *deck.Corpus
	store  *settings.Store
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(corpus *deck.Corpus, store *settings.Store) *PlayerHandler {
	return &PlayerHandler{corpus: corpus, store: store}
}

// Leaderboard returns player standings over the selected decks, with
// aliased players merged under their canonical name.
func (h *PlayerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	filter, err := selectionFilter(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	sortBy := r.URL.Query().Get("sort")
	switch sortBy {
	case "wins", "points", "decks":
	default:
		sortBy = "wins"
	}

	decks := filter.Apply(h.corpus.Decks())
	players := analyzer.Leaderboard(decks, h.store, sortBy)
	response.OK(w, map[string][]analyzer.PlayerStats{"players": players})
}

// SimilarPlayers suggests player names close to the given one, for
// spotting alias candidates to merge.
func (h *PlayerHandler) SimilarPlayers(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		response.BadRequest(w, errors.New("name query parameter is required"))
		return
	}
	limit := clamp(intQuery(r, "limit", 10), 1, 50)

	similar := analyzer.SimilarPlayers(name, h.corpus.Decks(), h.store, limit)
	response.OK(w, map[string][]string{"similar": similar})
}

// PlayerDeckSummary is a compact listing of one of a player's decks.
type PlayerDeckSummary struct {
	DeckID    int    `json:"deck_id"`
	Name      string `json:"name"`
	EventName string `json:"event_name"`
	Date      string `json:"date"`
	Rank      string `json:"rank"`
}

// PlayerDetailResponse is a player's standings plus their decks.
type PlayerDetailResponse struct {
	analyzer.PlayerStats
	Decks []PlayerDeckSummary `json:"decks"`
}

// PlayerDetail returns stats and deck history for one player. The name
// is resolved through the alias map first, so querying an alias returns
// the canonical player.
func (h *PlayerHandler) PlayerDetail(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "playerName"))
	if err != nil || name == "" {
		response.BadRequest(w, errors.New("player name is required"))
		return
	}

	stats, decks, err := analyzer.PlayerDetail(name, h.corpus.Decks(), h.store)
	if err != nil {
		if errors.Is(err, analyzer.ErrPlayerNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	deck.Sort(decks, "date", "desc")
	summaries := make([]PlayerDeckSummary, 0, len(decks))
	for _, d := range decks {
		summaries = append(summaries, PlayerDeckSummary{
			DeckID:    d.ID,
			Name:      d.Name,
			EventName: d.EventName,
			Date:      d.Date,
			Rank:      d.Rank,
		})
	}
	response.OK(w, PlayerDetailResponse{PlayerStats: stats, Decks: summaries})
}
