package handlers

import (
	"context"
	"testing"

	"github.com/pdelgado/mtg-metagame/internal/cards"
	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
)

// mockCardRepo is an in-memory CardRepository for handler tests.
type mockCardRepo struct {
	attrs cards.Map
	err   error
}

func (m *mockCardRepo) UpsertMany(_ context.Context, batch []cards.Attributes) error {
	if m.err != nil {
		return m.err
	}
	if m.attrs == nil {
		m.attrs = make(cards.Map)
	}
	for _, a := range batch {
		m.attrs[a.Name] = a
	}
	return nil
}

func (m *mockCardRepo) GetMany(_ context.Context, names []string) (cards.Map, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(cards.Map)
	for _, n := range names {
		if a, ok := m.attrs[n]; ok {
			out[n] = a
		}
	}
	return out, nil
}

func (m *mockCardRepo) LoadAll(_ context.Context) (cards.Map, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(cards.Map, len(m.attrs))
	for n, a := range m.attrs {
		out[n] = a
	}
	return out, nil
}

// newTestCorpus loads a small three-deck fixture: two decks at a spring
// event (one by an aliased player), and at a winter event a copy of the
// first mainboard.
func newTestCorpus(t *testing.T) *deck.Corpus {
	t.Helper()
	corpus := deck.NewCorpus()
	loaded, skipped := corpus.Replace([]deck.Deck{
		{
			ID: 1, EventID: 10, EventName: "Spring Open", Date: "15/03/24",
			Name: "Krenko Aggro", Player: "Alice", Rank: "1", Archetype: "Aggro",
			Commanders: []string{"Krenko, Mob Boss"},
			Mainboard: []deck.CardQuantity{
				{Qty: 4, Card: "Lightning Bolt"},
				{Qty: 20, Card: "Mountain"},
			},
		},
		{
			ID: 2, EventID: 10, EventName: "Spring Open", Date: "15/03/24",
			Name: "Dimir Control", Player: "J. Smith", Rank: "2", Archetype: "Control",
			Mainboard: []deck.CardQuantity{
				{Qty: 4, Card: "Counterspell"},
				{Qty: 20, Card: "Island"},
			},
		},
		{
			ID: 3, EventID: 11, EventName: "Winter Cup", Date: "20/02/24",
			Name: "Goblin Rush", Player: "Bob", Rank: "5-8", Archetype: "Aggro",
			Mainboard: []deck.CardQuantity{
				{Qty: 4, Card: "Lightning Bolt"},
				{Qty: 20, Card: "Mountain"},
			},
		},
	})
	if loaded != 3 || skipped != 0 {
		t.Fatalf("fixture load = %d loaded %d skipped", loaded, skipped)
	}
	return corpus
}

// newTestStore returns a settings store with one alias configured.
func newTestStore(t *testing.T) *settings.Store {
	t.Helper()
	store := settings.NewStore()
	if err := store.AddAlias("J. Smith", "John Smith"); err != nil {
		t.Fatalf("AddAlias() error = %v", err)
	}
	return store
}
