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
	"github.com/pdelgado/mtg-metagame/internal/storage/repository"
)

// MetagameHandler serves the aggregate metagame report and archetype
// profiles.
type MetagameHandler struct {
	corpus *deck.Corpus
	store  *settings.Store
	cards  repository.CardRepository
}

// NewMetagameHandler creates a new MetagameHandler.
func NewMetagameHandler(corpus *deck.Corpus, store *settings.Store, cards repository.CardRepository) *MetagameHandler {
	return &MetagameHandler{corpus: corpus, store: store, cards: cards}
}

// GetMetagame returns the full metagame report over the selected decks.
// Toggles: placement_weighted, ignore_lands. Selection: event_ids or
// date_from/date_to.
func (h *MetagameHandler) GetMetagame(w http.ResponseWriter, r *http.Request) {
	filter, err := selectionFilter(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	opts := analyzer.Options{
		PlacementWeighted: boolQuery(r, "placement_weighted"),
		IgnoreLands:       boolQuery(r, "ignore_lands"),
	}

	decks := filter.Apply(h.corpus.Decks())
	report := analyzer.Analyze(decks, opts, h.store.RankWeights(), h.store.IgnoreLands())
	response.OK(w, report)
}

// GetArchetypeProfile returns the aggregate profile of one archetype:
// average curve, color and type distributions and its defining cards.
func (h *MetagameHandler) GetArchetypeProfile(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "archetype"))
	if err != nil || name == "" {
		response.BadRequest(w, errors.New("archetype name is required"))
		return
	}

	filter, err := selectionFilter(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	decks := filter.Apply(h.corpus.Decks())

	// Profile aggregation wants attributes for every card the
	// archetype's decks run; loading the whole cache is simpler and
	// the cache is small relative to the corpus.
	attrs, err := h.cards.LoadAll(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	profile, err := analyzer.ProfileArchetype(decks, name, attrs, h.store.IgnoreLands())
	if err != nil {
		if errors.Is(err, analyzer.ErrArchetypeNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.OK(w, profile)
}

// Synergy returns the card pairs that co-occur most across the selected
// decks.
func (h *MetagameHandler) Synergy(w http.ResponseWriter, r *http.Request) {
	filter, err := selectionFilter(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	opts := analyzer.SynergyOptions{
		MinDecks:    intQuery(r, "min_decks", 2),
		TopN:        clamp(intQuery(r, "top_n", 50), 1, 200),
		IgnoreLands: boolQuery(r, "ignore_lands"),
		IgnoreSet:   h.store.IgnoreLands(),
	}

	decks := filter.Apply(h.corpus.Decks())
	pairs := analyzer.Synergy(decks, opts)
	response.OK(w, map[string][]analyzer.SynergyPair{"synergy": pairs})
}
