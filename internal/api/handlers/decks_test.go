package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pdelgado/mtg-metagame/internal/analyzer"
	"github.com/pdelgado/mtg-metagame/internal/cards"
)

func newDeckHandler(t *testing.T) *DeckHandler {
	t.Helper()
	repo := &mockCardRepo{attrs: cards.Map{
		"Lightning Bolt": {Name: "Lightning Bolt", CMC: 1, TypeLine: "Instant", Colors: []string{"R"}, Identity: []string{"R"}},
	}}
	return NewDeckHandler(newTestCorpus(t), newTestStore(t), repo)
}

// deckRouter mounts the handler the way the server does, so URL
// parameters resolve.
func deckRouter(h *DeckHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/decks", h.ListDecks)
	r.Get("/decks/compare", h.CompareDecks)
	r.Get("/decks/duplicates", h.ListDuplicates)
	r.Get("/decks/{deckID}", h.GetDeck)
	r.Get("/decks/{deckID}/similar", h.SimilarDecks)
	r.Get("/decks/{deckID}/analysis", h.DeckAnalysis)
	return r
}

func getJSON(t *testing.T, handler http.Handler, url string, wantStatus int, target interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("GET %s status = %d, want %d (body %s)", url, rec.Code, wantStatus, rec.Body.String())
	}
	if target != nil && rec.Code == http.StatusOK {
		// Targets are reused across calls; json.Unmarshal merges into
		// non-nil maps, so zero the target first to avoid stale keys.
		if v := reflect.ValueOf(target); v.Kind() == reflect.Ptr {
			v.Elem().Set(reflect.Zero(v.Elem().Type()))
		}
		if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
}

func TestListDecks(t *testing.T) {
	router := deckRouter(newDeckHandler(t))

	var resp ListDecksResponse
	getJSON(t, router, "/decks", http.StatusOK, &resp)

	if resp.Total != 3 || len(resp.Decks) != 3 {
		t.Fatalf("total = %d, decks = %d, want 3", resp.Total, len(resp.Decks))
	}
	// Default sort is date desc; the two spring decks come first.
	if resp.Decks[2].ID != 3 {
		t.Errorf("last deck = %d, want the winter deck", resp.Decks[2].ID)
	}
	// Aliased players come back resolved.
	for _, d := range resp.Decks {
		if d.ID == 2 && d.Player != "John Smith" {
			t.Errorf("deck 2 player = %q, want alias-resolved", d.Player)
		}
	}
}

func TestListDecksFilters(t *testing.T) {
	router := deckRouter(newDeckHandler(t))

	tests := []struct {
		name    string
		url     string
		wantIDs map[int]bool
	}{
		{"by event", "/decks?event_ids=11", map[int]bool{3: true}},
		{"by commander", "/decks?commander=krenko", map[int]bool{1: true}},
		{"by card", "/decks?card=lightning", map[int]bool{1: true, 3: true}},
		{"by archetype", "/decks?archetype=control", map[int]bool{2: true}},
		{"by canonical player name", "/decks?player=john", map[int]bool{2: true}},
		{"accent-insensitive player", "/decks?player=ALICE", map[int]bool{1: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ListDecksResponse
			getJSON(t, router, tt.url, http.StatusOK, &resp)
			if len(resp.Decks) != len(tt.wantIDs) {
				t.Fatalf("got %d decks, want %d", len(resp.Decks), len(tt.wantIDs))
			}
			for _, d := range resp.Decks {
				if !tt.wantIDs[d.ID] {
					t.Errorf("unexpected deck %d in result", d.ID)
				}
			}
		})
	}
}

func TestListDecksPagination(t *testing.T) {
	router := deckRouter(newDeckHandler(t))

	var resp ListDecksResponse
	getJSON(t, router, "/decks?limit=2&skip=2", http.StatusOK, &resp)

	if resp.Total != 3 {
		t.Errorf("Total = %d, want 3 regardless of page", resp.Total)
	}
	if len(resp.Decks) != 1 {
		t.Errorf("page length = %d, want 1", len(resp.Decks))
	}
	if resp.Skip != 2 || resp.Limit != 2 {
		t.Errorf("echo skip/limit = %d/%d", resp.Skip, resp.Limit)
	}

	// Skip past the end returns an empty page, not an error.
	getJSON(t, router, "/decks?skip=50", http.StatusOK, &resp)
	if len(resp.Decks) != 0 || resp.Total != 3 {
		t.Errorf("overshoot page = %d decks, total %d", len(resp.Decks), resp.Total)
	}
}

func TestCompareDecks(t *testing.T) {
	router := deckRouter(newDeckHandler(t))

	var resp struct {
		Decks []struct {
			ID int `json:"deck_id"`
		} `json:"decks"`
	}
	getJSON(t, router, "/decks/compare?ids=1,2", http.StatusOK, &resp)
	if len(resp.Decks) != 2 {
		t.Fatalf("got %d decks, want 2", len(resp.Decks))
	}

	getJSON(t, router, "/decks/compare?ids=1", http.StatusBadRequest, nil)
	getJSON(t, router, "/decks/compare?ids=1,2,3,1,2", http.StatusBadRequest, nil)
	getJSON(t, router, "/decks/compare?ids=1,999", http.StatusNotFound, nil)
	getJSON(t, router, "/decks/compare?ids=1,abc", http.StatusBadRequest, nil)
}

func TestListDuplicates(t *testing.T) {
	router := deckRouter(newDeckHandler(t))

	var resp struct {
		Duplicates []DuplicateGroupDetail `json:"duplicates"`
	}
	getJSON(t, router, "/decks/duplicates", http.StatusOK, &resp)

	if len(resp.Duplicates) != 1 {
		t.Fatalf("got %d groups, want 1", len(resp.Duplicates))
	}
	g := resp.Duplicates[0]
	if g.PrimaryDeckID != 1 {
		t.Errorf("primary = %d, want lowest id 1", g.PrimaryDeckID)
	}
	if len(g.DuplicateDeckIDs) != 1 || g.DuplicateDeckIDs[0] != 3 {
		t.Errorf("duplicate ids = %v, want [3]", g.DuplicateDeckIDs)
	}
	if len(g.Duplicates) != 1 || g.Duplicates[0].EventName != "Winter Cup" {
		t.Errorf("duplicate entries = %+v", g.Duplicates)
	}
}

func TestGetDeck(t *testing.T) {
	router := deckRouter(newDeckHandler(t))

	var detail DeckDetail
	getJSON(t, router, "/decks/2", http.StatusOK, &detail)
	if detail.ID != 2 {
		t.Errorf("deck id = %d, want 2", detail.ID)
	}
	if detail.Player != "John Smith" {
		t.Errorf("player = %q, want alias-resolved", detail.Player)
	}
	if detail.DuplicateInfo != nil {
		t.Errorf("deck 2 has no duplicates, got %+v", detail.DuplicateInfo)
	}

	getJSON(t, router, "/decks/3", http.StatusOK, &detail)
	if detail.DuplicateInfo == nil || !detail.DuplicateInfo.IsDuplicate {
		t.Errorf("deck 3 duplicate info = %+v, want duplicate of deck 1", detail.DuplicateInfo)
	}

	getJSON(t, router, "/decks/999", http.StatusNotFound, nil)
	getJSON(t, router, "/decks/abc", http.StatusBadRequest, nil)
}

func TestSimilarDecks(t *testing.T) {
	router := deckRouter(newDeckHandler(t))

	var resp struct {
		Similar []analyzer.SimilarDeck `json:"similar"`
	}
	getJSON(t, router, "/decks/1/similar", http.StatusOK, &resp)

	if len(resp.Similar) == 0 {
		t.Fatal("no similar decks returned")
	}
	if resp.Similar[0].DeckID != 3 || resp.Similar[0].Similarity != 100 {
		t.Errorf("top match = %+v, want the identical deck 3 at 100", resp.Similar[0])
	}
	for _, s := range resp.Similar {
		if s.DeckID == 1 {
			t.Error("similar list contains the target deck")
		}
	}

	getJSON(t, router, "/decks/999/similar", http.StatusNotFound, nil)
}

func TestDeckAnalysis(t *testing.T) {
	router := deckRouter(newDeckHandler(t))

	var a analyzer.DeckAnalysis
	getJSON(t, router, "/decks/1/analysis", http.StatusOK, &a)

	if a.LandsDistribution.Lands != 20 || a.LandsDistribution.Nonlands != 4 {
		t.Errorf("lands split = %+v", a.LandsDistribution)
	}
	if a.ManaCurve[1] != 4 {
		t.Errorf("mana curve = %v", a.ManaCurve)
	}

	getJSON(t, router, "/decks/999/analysis", http.StatusNotFound, nil)
}
