package deck

import "testing"

func validDeck(id int, player string) Deck {
	return Deck{
		ID:        id,
		EventID:   100,
		Player:    player,
		Mainboard: []CardQuantity{{Qty: 1, Card: "Sol Ring"}},
	}
}

func TestCorpusReplace(t *testing.T) {
	c := NewCorpus()

	loaded, skipped := c.Replace([]Deck{
		validDeck(1, "Alice"),
		validDeck(2, "Bob"),
		{ID: 3, Mainboard: []CardQuantity{{Qty: 0, Card: "Sol Ring"}}}, // invalid qty
		validDeck(2, "Carol"),                                          // duplicate id
	})

	if loaded != 2 || skipped != 2 {
		t.Errorf("Replace() = (%d, %d), want (2, 2)", loaded, skipped)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	d, ok := c.Get(2)
	if !ok {
		t.Fatal("Get(2) not found")
	}
	if d.Player != "Bob" {
		t.Errorf("first deck with id 2 should win, got player %q", d.Player)
	}
	if _, ok := c.Get(3); ok {
		t.Error("invalid deck 3 should not be loaded")
	}

	// A second Replace swaps everything.
	c.Replace([]Deck{validDeck(7, "Dave")})
	if c.Len() != 1 {
		t.Errorf("Len() after second Replace = %d, want 1", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Error("deck 1 should be gone after Replace")
	}
}

func TestCorpusAppend(t *testing.T) {
	c := NewCorpus()
	c.Replace([]Deck{validDeck(1, "Alice")})

	loaded, skipped := c.Append([]Deck{
		validDeck(1, "Impostor"), // id already loaded
		validDeck(2, "Bob"),
	})
	if loaded != 1 || skipped != 1 {
		t.Errorf("Append() = (%d, %d), want (1, 1)", loaded, skipped)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	d, _ := c.Get(1)
	if d.Player != "Alice" {
		t.Errorf("existing deck 1 must not be overwritten, got player %q", d.Player)
	}
}

func TestCorpusSnapshotStable(t *testing.T) {
	c := NewCorpus()
	c.Replace([]Deck{validDeck(1, "Alice")})

	snapshot := c.Decks()
	c.Append([]Deck{validDeck(2, "Bob")})
	c.Replace([]Deck{validDeck(3, "Carol")})

	if len(snapshot) != 1 || snapshot[0].ID != 1 {
		t.Errorf("earlier snapshot changed under mutation: %+v", snapshot)
	}
}

func TestCorpusNormalizesSplitCards(t *testing.T) {
	c := NewCorpus()
	c.Replace([]Deck{{
		ID:        1,
		Mainboard: []CardQuantity{{Qty: 4, Card: "Fire / Ice"}},
	}})

	d, _ := c.Get(1)
	if got := d.Mainboard[0].Card; got != "Fire // Ice" {
		t.Errorf("split card not normalized on load: %q", got)
	}
}

func TestCorpusClear(t *testing.T) {
	c := NewCorpus()
	c.Replace([]Deck{validDeck(1, "Alice")})
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Error("Get(1) should miss after Clear")
	}
}
