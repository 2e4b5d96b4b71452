package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/storage"
)

func newSystemRouter(t *testing.T, corpus *deck.Corpus) (http.Handler, *storage.Service) {
	t.Helper()
	svc := openTestStorage(t)
	h := NewSystemHandler(corpus, svc)

	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/date-range", h.DateRange)
	r.Get("/format-info", h.FormatInfo)
	r.Get("/events", h.Events)
	r.Post("/load", h.LoadCorpus)
	r.Get("/export", h.ExportCorpus)
	return r, svc
}

func TestHealth(t *testing.T) {
	router, _ := newSystemRouter(t, newTestCorpus(t))

	var resp map[string]string
	getJSON(t, router, "/health", http.StatusOK, &resp)
	if resp["status"] != "ok" {
		t.Errorf("status = %q", resp["status"])
	}
}

func TestDateRange(t *testing.T) {
	router, _ := newSystemRouter(t, newTestCorpus(t))

	var resp DateRangeResponse
	getJSON(t, router, "/date-range", http.StatusOK, &resp)

	if resp.MinDate != "20/02/24" || resp.MaxDate != "15/03/24" {
		t.Errorf("range = %+v", resp)
	}
	if resp.LastEventDate != resp.MaxDate {
		t.Errorf("LastEventDate = %q, want max date", resp.LastEventDate)
	}
}

func TestDateRangeMalformedDates(t *testing.T) {
	corpus := deck.NewCorpus()
	corpus.Replace([]deck.Deck{
		{ID: 1, EventID: 1, Date: "20/02/24"},
		{ID: 2, EventID: 1, Date: "unknown"},
		{ID: 3, EventID: 2, Date: "15/03/24"},
	})
	router, _ := newSystemRouter(t, corpus)

	var resp DateRangeResponse
	getJSON(t, router, "/date-range", http.StatusOK, &resp)

	if resp.MinDate != "20/02/24" || resp.MaxDate != "15/03/24" {
		t.Errorf("range = %+v, want unparseable dates skipped", resp)
	}
	if resp.LastEventDate != "15/03/24" {
		t.Errorf("LastEventDate = %q, want 15/03/24", resp.LastEventDate)
	}
}

func TestDateRangeEmptyCorpus(t *testing.T) {
	router, _ := newSystemRouter(t, deck.NewCorpus())

	var resp DateRangeResponse
	getJSON(t, router, "/date-range", http.StatusOK, &resp)
	if resp.MinDate != "" || resp.MaxDate != "" {
		t.Errorf("range on empty corpus = %+v", resp)
	}
}

func TestFormatInfo(t *testing.T) {
	tests := []struct {
		name  string
		decks []deck.Deck
		want  FormatInfoResponse
	}{
		{
			"single known format",
			[]deck.Deck{{ID: 1, EventID: 1, FormatID: "PAU"}},
			FormatInfoResponse{FormatID: "PAU", FormatName: "Pauper"},
		},
		{
			"unknown id keeps the raw value",
			[]deck.Deck{{ID: 1, EventID: 1, FormatID: "XZ"}},
			FormatInfoResponse{FormatID: "XZ", FormatName: "XZ"},
		},
		{
			"mixed formats",
			[]deck.Deck{{ID: 1, EventID: 1, FormatID: "MO"}, {ID: 2, EventID: 1, FormatID: "LE"}},
			FormatInfoResponse{FormatName: "Multiple Formats"},
		},
		{"no formats", []deck.Deck{{ID: 1, EventID: 1}}, FormatInfoResponse{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corpus := deck.NewCorpus()
			corpus.Replace(tt.decks)
			router, _ := newSystemRouter(t, corpus)

			var resp FormatInfoResponse
			getJSON(t, router, "/format-info", http.StatusOK, &resp)
			if resp != tt.want {
				t.Errorf("format info = %+v, want %+v", resp, tt.want)
			}
		})
	}
}

func TestEvents(t *testing.T) {
	router, _ := newSystemRouter(t, newTestCorpus(t))

	var resp struct {
		Events []EventSummary `json:"events"`
	}
	getJSON(t, router, "/events", http.StatusOK, &resp)

	if len(resp.Events) != 2 {
		t.Fatalf("events = %+v, want 2 unique events", resp.Events)
	}
	if resp.Events[0].EventID != 10 || resp.Events[1].EventID != 11 {
		t.Errorf("order = %+v, want newest first", resp.Events)
	}
	if resp.Events[0].EventName != "Spring Open" {
		t.Errorf("event name = %q", resp.Events[0].EventName)
	}
}

func TestLoadCorpus(t *testing.T) {
	corpus := newTestCorpus(t)
	router, svc := newSystemRouter(t, corpus)

	body := `{"decks":[
		{"deck_id":7,"event_id":20,"event_name":"Summer Clash","date":"01/06/24","player":"Eve",
		 "mainboard":[{"qty":4,"card":"Shock"}]},
		{"deck_id":8,"event_id":20,"mainboard":[{"qty":0,"card":"Broken"}]}
	]}`

	var resp LoadResponse
	doJSON(t, router, http.MethodPost, "/load", body, http.StatusOK, &resp)

	if resp.Loaded != 1 || resp.Skipped != 1 {
		t.Errorf("load = %+v, want 1 loaded 1 skipped", resp)
	}
	if corpus.Len() != 1 {
		t.Errorf("corpus size = %d, want replaced", corpus.Len())
	}

	// The new corpus is persisted.
	n, err := svc.Decks.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("persisted decks = %d, want 1", n)
	}
}

func TestLoadCorpusAppend(t *testing.T) {
	corpus := newTestCorpus(t)
	router, _ := newSystemRouter(t, corpus)

	body := `{"append":true,"decks":[{"deck_id":7,"event_id":20,"mainboard":[{"qty":1,"card":"Shock"}]}]}`
	var resp LoadResponse
	doJSON(t, router, http.MethodPost, "/load", body, http.StatusOK, &resp)

	if resp.Loaded != 1 {
		t.Errorf("load = %+v", resp)
	}
	if corpus.Len() != 4 {
		t.Errorf("corpus size = %d, want 4 after append", corpus.Len())
	}
}

func TestLoadCorpusErrors(t *testing.T) {
	router, _ := newSystemRouter(t, newTestCorpus(t))

	doJSON(t, router, http.MethodPost, "/load", `{}`, http.StatusBadRequest, nil)
	doJSON(t, router, http.MethodPost, "/load", `garbage`, http.StatusBadRequest, nil)
	doJSON(t, router, http.MethodPost, "/load", `{"path":"/no/such/file.json"}`, http.StatusNotFound, nil)
}

func TestExportCorpus(t *testing.T) {
	router, _ := newSystemRouter(t, newTestCorpus(t))

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd == "" {
		t.Error("missing Content-Disposition header")
	}

	var decks []deck.Deck
	if err := json.Unmarshal(rec.Body.Bytes(), &decks); err != nil {
		t.Fatalf("failed to decode export: %v", err)
	}
	if len(decks) != 3 {
		t.Errorf("exported %d decks, want 3", len(decks))
	}
}

func TestExportCorpusEmpty(t *testing.T) {
	router, _ := newSystemRouter(t, deck.NewCorpus())
	getJSON(t, router, "/export", http.StatusNotFound, nil)
}
