package deck

import (
	"log"
	"sync"
)

// Corpus is the in-memory deck collection shared by every aggregator.
// Loads replace or append whole batches; individual decks are never
// mutated in place, so slices handed to readers stay valid across a
// concurrent reload.
type Corpus struct {
	mu    sync.RWMutex
	decks []Deck
	byID  map[int]int // deck id -> index into decks
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{byID: make(map[int]int)}
}

// sanitize validates and normalizes a batch, dropping decks that break
// the quantity/name invariants. One bad deck must not abort the load.
func sanitize(decks []Deck, seen map[int]bool) []Deck {
	out := make([]Deck, 0, len(decks))
	for _, d := range decks {
		if err := d.Validate(); err != nil {
			log.Printf("corpus: skipping invalid deck: %v", err)
			continue
		}
		if seen[d.ID] {
			log.Printf("corpus: skipping deck %d: duplicate deck id", d.ID)
			continue
		}
		seen[d.ID] = true
		d.NormalizeSplitCards()
		out = append(out, d)
	}
	return out
}

// Replace swaps the whole corpus for a new batch. Returns how many
// decks were loaded and how many were skipped as invalid.
func (c *Corpus) Replace(decks []Deck) (loaded, skipped int) {
	seen := make(map[int]bool, len(decks))
	clean := sanitize(decks, seen)

	byID := make(map[int]int, len(clean))
	for i, d := range clean {
		byID[d.ID] = i
	}

	c.mu.Lock()
	c.decks = clean
	c.byID = byID
	c.mu.Unlock()

	return len(clean), len(decks) - len(clean)
}

// Append adds a batch to the corpus, skipping decks whose id is already
// present. The backing slice is rebuilt so readers holding the previous
// snapshot are unaffected.
func (c *Corpus) Append(decks []Deck) (loaded, skipped int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[int]bool, len(c.decks)+len(decks))
	for id := range c.byID {
		seen[id] = true
	}
	clean := sanitize(decks, seen)

	merged := make([]Deck, 0, len(c.decks)+len(clean))
	merged = append(merged, c.decks...)
	merged = append(merged, clean...)

	byID := make(map[int]int, len(merged))
	for i, d := range merged {
		byID[d.ID] = i
	}
	c.decks = merged
	c.byID = byID

	return len(clean), len(decks) - len(clean)
}

// Clear removes every deck.
func (c *Corpus) Clear() {
	c.mu.Lock()
	c.decks = nil
	c.byID = make(map[int]int)
	c.mu.Unlock()
}

// Decks returns the current corpus snapshot. The returned slice must be
// treated as read-only; loads never mutate it.
func (c *Corpus) Decks() []Deck {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.decks
}

// Get returns the deck with the given id.
func (c *Corpus) Get(id int) (Deck, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return Deck{}, false
	}
	return c.decks[i], true
}

// Len returns the number of decks currently loaded.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.decks)
}
