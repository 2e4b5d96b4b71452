package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdelgado/mtg-metagame/internal/api/response"
	"github.com/pdelgado/mtg-metagame/internal/cards"
	"github.com/pdelgado/mtg-metagame/internal/storage/repository"
)

// CardHandler serves card attribute lookups backed by the local cache.
type CardHandler struct {
	cards repository.CardRepository
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(repo repository.CardRepository) *CardHandler {
	return &CardHandler{cards: repo}
}

// LookupRequest is the card lookup body.
type LookupRequest struct {
	Names []string `json:"names"`
}

// Lookup returns attributes for the named cards. Cards absent from the
// cache are simply missing from the result.
func (h *CardHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if len(req.Names) == 0 {
		response.OK(w, cards.Map{})
		return
	}
	attrs, err := h.cards.GetMany(r.Context(), req.Names)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.OK(w, attrs)
}

// UploadRequest is the card attribute upload body.
type UploadRequest struct {
	Cards []cards.Attributes `json:"cards"`
}

// Upload inserts or updates card attributes in the cache.
func (h *CardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if len(req.Cards) == 0 {
		response.BadRequest(w, errors.New("no cards provided"))
		return
	}
	for _, c := range req.Cards {
		if c.Name == "" {
			response.BadRequest(w, errors.New("card with empty name"))
			return
		}
	}
	if err := h.cards.UpsertMany(r.Context(), req.Cards); err != nil {
		response.InternalError(w, err)
		return
	}
	response.OK(w, map[string]string{"message": fmt.Sprintf("Stored %d cards", len(req.Cards))})
}
