package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/pdelgado/mtg-metagame/internal/api/response"
	"github.com/pdelgado/mtg-metagame/internal/settings"
	"github.com/pdelgado/mtg-metagame/internal/storage"
)

// SettingsHandler handles the configuration surface: player aliases,
// rank weights and the ignore-lands card list. Mutations swap a new
// snapshot into the settings store and write through to storage.
type SettingsHandler struct {
	store   *settings.Store
	storage *storage.Service
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store *settings.Store, svc *storage.Service) *SettingsHandler {
	return &SettingsHandler{store: store, storage: svc}
}

// persist runs a write-through save, logging failures instead of
// surfacing them: the in-memory store already holds the new snapshot,
// so the mutation succeeded from the caller's point of view.
func persist(what string, save func() error) {
	if err := save(); err != nil {
		log.Printf("Failed to persist %s: %v", what, err)
	}
}

// GetIgnoreLandsCards returns the card names excluded when ignore_lands
// is set.
func (h *SettingsHandler) GetIgnoreLandsCards(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string][]string{"cards": h.store.IgnoreLandsList()})
}

// IgnoreLandsCardsRequest is the body for updating the ignore-lands
// card list.
type IgnoreLandsCardsRequest struct {
	Cards []string `json:"cards"`
}

// PutIgnoreLandsCards replaces the ignore-lands card list.
func (h *SettingsHandler) PutIgnoreLandsCards(w http.ResponseWriter, r *http.Request) {
	var req IgnoreLandsCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	h.store.SetIgnoreLands(req.Cards)
	persist("ignore-lands cards", func() error {
		return h.storage.SaveIgnoreLands(r.Context(), h.store)
	})
	response.OK(w, map[string][]string{"cards": h.store.IgnoreLandsList()})
}

// GetPlayerAliases returns the alias map (alias -> canonical).
func (h *SettingsHandler) GetPlayerAliases(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]settings.AliasMap{"aliases": h.store.Aliases()})
}

// PlayerAliasRequest is the body for adding a player alias.
type PlayerAliasRequest struct {
	Alias     string `json:"alias"`
	Canonical string `json:"canonical"`
}

// AddPlayerAlias maps an alias to a canonical player name.
func (h *SettingsHandler) AddPlayerAlias(w http.ResponseWriter, r *http.Request) {
	var req PlayerAliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if err := h.store.AddAlias(req.Alias, req.Canonical); err != nil {
		response.BadRequest(w, err)
		return
	}
	persist("player aliases", func() error {
		return h.storage.SaveAliases(r.Context(), h.store)
	})
	response.OK(w, map[string]settings.AliasMap{"aliases": h.store.Aliases()})
}

// RemovePlayerAlias removes an alias mapping. Removing an unknown alias
// is not an error.
func (h *SettingsHandler) RemovePlayerAlias(w http.ResponseWriter, r *http.Request) {
	alias, err := url.PathUnescape(chi.URLParam(r, "alias"))
	if err != nil || alias == "" {
		response.BadRequest(w, errors.New("alias is required"))
		return
	}
	h.store.RemoveAlias(alias)
	persist("player aliases", func() error {
		return h.storage.SaveAliases(r.Context(), h.store)
	})
	response.OK(w, map[string]settings.AliasMap{"aliases": h.store.Aliases()})
}

// GetRankWeights returns the rank weight table used for placement
// weighting and leaderboard points.
func (h *SettingsHandler) GetRankWeights(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]settings.RankWeights{"weights": h.store.RankWeights()})
}

// RankWeightsRequest is the body for replacing the rank weight table.
type RankWeightsRequest struct {
	Weights settings.RankWeights `json:"weights"`
}

// PutRankWeights replaces the rank weight table.
func (h *SettingsHandler) PutRankWeights(w http.ResponseWriter, r *http.Request) {
	var req RankWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if err := h.store.SetRankWeights(req.Weights); err != nil {
		response.BadRequest(w, err)
		return
	}
	persist("rank weights", func() error {
		return h.storage.SaveRankWeights(r.Context(), h.store)
	})
	response.OK(w, map[string]settings.RankWeights{"weights": h.store.RankWeights()})
}
