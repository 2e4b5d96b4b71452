package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"

	"github.com/pdelgado/mtg-metagame/internal/api/response"
	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/storage"
)

// SystemHandler handles health, corpus metadata and corpus load/export.
type SystemHandler struct {
	corpus  *deck.Corpus
	storage *storage.Service
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(corpus *deck.Corpus, svc *storage.Service) *SystemHandler {
	return &SystemHandler{corpus: corpus, storage: svc}
}

// Health is the load balancer health check.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// DateRangeResponse reports the date span of the loaded corpus. Fields
// are empty when no deck carries a parseable date.
type DateRangeResponse struct {
	MinDate       string `json:"min_date"`
	MaxDate       string `json:"max_date"`
	LastEventDate string `json:"last_event_date"`
}

// DateRange returns the earliest and latest deck dates in the corpus.
// Decks with malformed dates are ignored.
func (h *SystemHandler) DateRange(w http.ResponseWriter, r *http.Request) {
	var out DateRangeResponse
	minKey, maxKey := "", ""
	for _, d := range h.corpus.Decks() {
		key, ok := deck.DateKey(d.Date)
		if !ok {
			continue
		}
		if minKey == "" || key < minKey {
			minKey = key
			out.MinDate = d.Date
		}
		if maxKey == "" || key > maxKey {
			maxKey = key
			out.MaxDate = d.Date
		}
	}
	out.LastEventDate = out.MaxDate
	response.OK(w, out)
}

// formatNames maps mtgtop8 format IDs to display names.
var formatNames = map[string]string{
	"ST": "Standard", "PI": "Pioneer", "MO": "Modern", "LE": "Legacy",
	"VI": "Vintage", "PAU": "Pauper", "cEDH": "cEDH", "EDH": "Duel Commander",
	"PREM": "Premodern", "EXP": "Explorer", "HI": "Historic", "ALCH": "Alchemy",
	"PEA": "Peasant", "BL": "Block", "EX": "Extended", "HIGH": "Highlander",
	"CHL": "Canadian Highlander",
}

// FormatInfoResponse identifies the format of the loaded corpus.
type FormatInfoResponse struct {
	FormatID   string `json:"format_id"`
	FormatName string `json:"format_name"`
}

// FormatInfo returns the format detected from the loaded decks. A
// corpus mixing formats reports no single format ID.
func (h *SystemHandler) FormatInfo(w http.ResponseWriter, r *http.Request) {
	ids := make(map[string]bool)
	for _, d := range h.corpus.Decks() {
		if d.FormatID != "" {
			ids[d.FormatID] = true
		}
	}
	var out FormatInfoResponse
	switch len(ids) {
	case 0:
	case 1:
		for id := range ids {
			out.FormatID = id
			out.FormatName = formatNames[id]
			if out.FormatName == "" {
				out.FormatName = id
			}
		}
	default:
		out.FormatName = "Multiple Formats"
	}
	response.OK(w, out)
}

// EventSummary is one tournament in the events listing.
type EventSummary struct {
	EventID   int    `json:"event_id"`
	EventName string `json:"event_name"`
	Date      string `json:"date"`
	FormatID  string `json:"format_id"`
}

// Events lists the unique events present in the corpus, newest first.
func (h *SystemHandler) Events(w http.ResponseWriter, r *http.Request) {
	seen := make(map[int]bool)
	var events []EventSummary
	for _, d := range h.corpus.Decks() {
		if seen[d.EventID] {
			continue
		}
		seen[d.EventID] = true
		events = append(events, EventSummary{
			EventID:   d.EventID,
			EventName: d.EventName,
			Date:      d.Date,
			FormatID:  d.FormatID,
		})
	}
	sort.Slice(events, func(i, j int) bool {
		ki, kj := deck.DateSortKey(events[i].Date), deck.DateSortKey(events[j].Date)
		if ki != kj {
			return ki > kj
		}
		return events[i].EventID > events[j].EventID
	})
	if events == nil {
		events = []EventSummary{}
	}
	response.OK(w, map[string][]EventSummary{"events": events})
}

// LoadRequest is the corpus load body: an inline deck array or a path
// to a JSON file on the server. Append adds to the corpus instead of
// replacing it.
type LoadRequest struct {
	Decks  []deck.Deck `json:"decks"`
	Path   string      `json:"path"`
	Append bool        `json:"append"`
}

// LoadResponse reports the outcome of a corpus load.
type LoadResponse struct {
	Loaded  int    `json:"loaded"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

// LoadCorpus replaces (or appends to) the corpus from a JSON body or a
// server-side file, then persists the new corpus.
func (h *SystemHandler) LoadCorpus(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	decks := req.Decks
	if decks == nil && req.Path != "" {
		loaded, err := deck.LoadFile(req.Path)
		if err != nil {
			if os.IsNotExist(err) {
				response.NotFound(w, err)
				return
			}
			response.BadRequest(w, err)
			return
		}
		decks = loaded
	}
	if decks == nil {
		response.BadRequest(w, errors.New("provide 'decks' array or 'path'"))
		return
	}

	var loaded, skipped int
	if req.Append {
		loaded, skipped = h.corpus.Append(decks)
	} else {
		loaded, skipped = h.corpus.Replace(decks)
	}

	if err := h.storage.Decks.ReplaceAll(r.Context(), h.corpus.Decks()); err != nil {
		log.Printf("Failed to persist corpus: %v", err)
	}

	response.OK(w, LoadResponse{
		Loaded:  loaded,
		Skipped: skipped,
		Message: fmt.Sprintf("Loaded %d decks (%d skipped)", loaded, skipped),
	})
}

// ExportCorpus downloads the current corpus as JSON in the same shape
// LoadCorpus accepts.
func (h *SystemHandler) ExportCorpus(w http.ResponseWriter, r *http.Request) {
	decks := h.corpus.Decks()
	if len(decks) == 0 {
		response.NotFound(w, errors.New("no data to export, load decks first"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="decks.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(decks); err != nil {
		log.Printf("Failed to write export: %v", err)
	}
}
