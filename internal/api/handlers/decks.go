package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdelgado/mtg-metagame/internal/analyzer"
	"github.com/pdelgado/mtg-metagame/internal/api/response"
	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
	"github.com/pdelgado/mtg-metagame/internal/storage/repository"
)

// DeckHandler handles deck browsing, comparison and analysis requests.
type DeckHandler struct {
	corpus *deck.Corpus
	store  *settings.Store
	cards  repository.CardRepository
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(corpus *deck.Corpus, store *settings.Store, cards repository.CardRepository) *DeckHandler {
	return &DeckHandler{corpus: corpus, store: store, cards: cards}
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// resolvePlayers returns a copy of the decks with player names replaced
// by their alias-resolved canonical form.
func resolvePlayers(decks []deck.Deck, store *settings.Store) []deck.Deck {
	out := make([]deck.Deck, len(decks))
	copy(out, decks)
	for i := range out {
		out[i].Player = store.ResolvePlayer(out[i].Player)
	}
	return out
}

func anyCardMatches(cards []deck.CardQuantity, norm string) bool {
	for _, cq := range cards {
		if strings.Contains(deck.NormalizeSearch(cq.Card), norm) {
			return true
		}
	}
	return false
}

// ListDecksResponse is the paginated deck list payload.
type ListDecksResponse struct {
	Decks []deck.Deck `json:"decks"`
	Total int         `json:"total"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
}

// ListDecks returns decks with optional filters, sorting and
// pagination. All name filters are accent-insensitive substring
// matches; the player filter also matches the alias-resolved name.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	filter, err := selectionFilter(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	filter.DateFrom, filter.DateTo = "", "" // deck listing filters by event only

	q := r.URL.Query()
	decks := filter.Apply(h.corpus.Decks())

	if commander := deck.NormalizeSearch(q.Get("commander")); commander != "" {
		decks = filterDecks(decks, func(d *deck.Deck) bool {
			for _, c := range d.Commanders {
				if strings.Contains(deck.NormalizeSearch(c), commander) {
					return true
				}
			}
			return false
		})
	}
	if name := deck.NormalizeSearch(q.Get("deck_name")); name != "" {
		decks = filterDecks(decks, func(d *deck.Deck) bool {
			return strings.Contains(deck.NormalizeSearch(d.Name), name)
		})
	}
	if archetype := deck.NormalizeSearch(q.Get("archetype")); archetype != "" {
		decks = filterDecks(decks, func(d *deck.Deck) bool {
			return strings.Contains(deck.NormalizeSearch(d.Archetype), archetype)
		})
	}
	if player := deck.NormalizeSearch(q.Get("player")); player != "" {
		decks = filterDecks(decks, func(d *deck.Deck) bool {
			return strings.Contains(deck.NormalizeSearch(d.Player), player) ||
				strings.Contains(deck.NormalizeSearch(h.store.ResolvePlayer(d.Player)), player)
		})
	}
	if card := deck.NormalizeSearch(q.Get("card")); card != "" {
		decks = filterDecks(decks, func(d *deck.Deck) bool {
			for _, c := range d.Commanders {
				if strings.Contains(deck.NormalizeSearch(c), card) {
					return true
				}
			}
			return anyCardMatches(d.Mainboard, card) || anyCardMatches(d.Sideboard, card)
		})
	}

	sortBy := q.Get("sort")
	switch sortBy {
	case "date", "rank", "player", "name":
	default:
		sortBy = "date"
	}
	order := q.Get("order")
	if order != "asc" {
		order = "desc"
	}

	sorted := make([]deck.Deck, len(decks))
	copy(sorted, decks)
	deck.Sort(sorted, sortBy, order)

	skip := intQuery(r, "skip", 0)
	if skip < 0 {
		skip = 0
	}
	limit := clamp(intQuery(r, "limit", defaultPageLimit), 1, maxPageLimit)

	total := len(sorted)
	if skip > total {
		skip = total
	}
	end := skip + limit
	if end > total {
		end = total
	}

	response.OK(w, ListDecksResponse{
		Decks: resolvePlayers(sorted[skip:end], h.store),
		Total: total,
		Skip:  skip,
		Limit: limit,
	})
}

func filterDecks(decks []deck.Deck, keep func(*deck.Deck) bool) []deck.Deck {
	out := make([]deck.Deck, 0, len(decks))
	for i := range decks {
		if keep(&decks[i]) {
			out = append(out, decks[i])
		}
	}
	return out
}

// CompareDecks returns 2 to 4 decks by ID for side-by-side comparison.
func (h *DeckHandler) CompareDecks(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	if len(ids) < 2 || len(ids) > 4 {
		response.BadRequest(w, errors.New("provide 2 to 4 deck IDs"))
		return
	}
	result := make([]deck.Deck, 0, len(ids))
	for _, id := range ids {
		d, ok := h.corpus.Get(id)
		if !ok {
			response.NotFound(w, analyzer.ErrDeckNotFound)
			return
		}
		d.Player = h.store.ResolvePlayer(d.Player)
		result = append(result, d)
	}
	response.OK(w, map[string][]deck.Deck{"decks": result})
}

// DuplicateEntry is one member of a duplicate group in the list
// payload, identified with enough context to review it.
type DuplicateEntry struct {
	DeckID    int    `json:"deck_id"`
	Name      string `json:"name"`
	Player    string `json:"player"`
	EventName string `json:"event_name"`
	Date      string `json:"date"`
}

// DuplicateGroupDetail is one group of decks sharing a mainboard.
type DuplicateGroupDetail struct {
	PrimaryDeckID    int              `json:"primary_deck_id"`
	PrimaryName      string           `json:"primary_name"`
	PrimaryPlayer    string           `json:"primary_player"`
	PrimaryEvent     string           `json:"primary_event"`
	PrimaryDate      string           `json:"primary_date"`
	DuplicateDeckIDs []int            `json:"duplicate_deck_ids"`
	Duplicates       []DuplicateEntry `json:"duplicates"`
}

// ListDuplicates returns groups of decks with identical mainboards,
// optionally limited to a set of events.
func (h *DeckHandler) ListDuplicates(w http.ResponseWriter, r *http.Request) {
	filter, err := selectionFilter(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	decks := filter.Apply(h.corpus.Decks())

	groups := analyzer.DuplicateGroups(decks)
	result := make([]DuplicateGroupDetail, 0, len(groups))
	for _, g := range groups {
		primary, _ := h.corpus.Get(g.PrimaryID)
		detail := DuplicateGroupDetail{
			PrimaryDeckID:    g.PrimaryID,
			PrimaryName:      primary.Name,
			PrimaryPlayer:    primary.Player,
			PrimaryEvent:     primary.EventName,
			PrimaryDate:      primary.Date,
			DuplicateDeckIDs: g.DuplicateIDs,
			Duplicates:       make([]DuplicateEntry, 0, len(g.DuplicateIDs)),
		}
		for _, id := range g.DuplicateIDs {
			d, _ := h.corpus.Get(id)
			detail.Duplicates = append(detail.Duplicates, DuplicateEntry{
				DeckID:    id,
				Name:      d.Name,
				Player:    d.Player,
				EventName: d.EventName,
				Date:      d.Date,
			})
		}
		result = append(result, detail)
	}
	response.OK(w, map[string][]DuplicateGroupDetail{"duplicates": result})
}

// DeckDetail is a single deck with its duplicate info attached when the
// deck shares a mainboard with others.
type DeckDetail struct {
	deck.Deck
	DuplicateInfo *analyzer.DuplicateInfo `json:"duplicate_info,omitempty"`
}

// GetDeck returns a single deck by ID with alias-resolved player and
// duplicate info.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "deckID"))
	if err != nil {
		response.BadRequest(w, errors.New("invalid deck ID"))
		return
	}
	d, ok := h.corpus.Get(id)
	if !ok {
		response.NotFound(w, analyzer.ErrDeckNotFound)
		return
	}
	d.Player = h.store.ResolvePlayer(d.Player)
	response.OK(w, DeckDetail{
		Deck:          d,
		DuplicateInfo: analyzer.DuplicateInfoFor(id, h.corpus.Decks()),
	})
}

// SimilarDecks returns the decks with the highest card overlap with the
// given deck.
func (h *DeckHandler) SimilarDecks(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "deckID"))
	if err != nil {
		response.BadRequest(w, errors.New("invalid deck ID"))
		return
	}
	target, ok := h.corpus.Get(id)
	if !ok {
		response.NotFound(w, analyzer.ErrDeckNotFound)
		return
	}
	filter, err := selectionFilter(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	limit := clamp(intQuery(r, "limit", analyzer.DefaultSimilarLimit), 1, 20)

	candidates := filter.Apply(h.corpus.Decks())
	similar := analyzer.SimilarDecks(&target, candidates, limit)
	response.OK(w, map[string][]analyzer.SimilarDeck{"similar": similar})
}

// DeckAnalysis returns the structural analysis of a single deck: mana
// curve, color and type distributions and card groupings.
func (h *DeckHandler) DeckAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "deckID"))
	if err != nil {
		response.BadRequest(w, errors.New("invalid deck ID"))
		return
	}
	d, ok := h.corpus.Get(id)
	if !ok {
		response.NotFound(w, analyzer.ErrDeckNotFound)
		return
	}

	names := make([]string, 0, len(d.Mainboard)+len(d.Sideboard))
	seen := make(map[string]bool)
	for _, board := range [][]deck.CardQuantity{d.Mainboard, d.Sideboard} {
		for _, cq := range board {
			if !seen[cq.Card] {
				seen[cq.Card] = true
				names = append(names, cq.Card)
			}
		}
	}
	attrs, err := h.cards.GetMany(r.Context(), names)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.OK(w, analyzer.AnalyzeDeck(&d, attrs, h.store.IgnoreLands()))
}
