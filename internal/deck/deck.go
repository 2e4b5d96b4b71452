// Package deck defines the tournament decklist model and the in-memory
// corpus the analytics engine runs over.
package deck

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// CardQuantity is one mainboard or sideboard entry: a card name and how
// many copies the deck runs.
type CardQuantity struct {
	Qty  int    `json:"qty"`
	Card string `json:"card"`
}

// Deck is one submitted tournament decklist. Decks are immutable once
// loaded into the corpus; all analytics read them without copying.
type Deck struct {
	ID          int            `json:"deck_id"`
	EventID     int            `json:"event_id"`
	FormatID    string         `json:"format_id"`
	Name        string         `json:"name"`
	Player      string         `json:"player"`
	EventName   string         `json:"event_name"`
	Date        string         `json:"date"` // DD/MM/YY
	Rank        string         `json:"rank"` // "1", "2", "3-4", "5-8", ...
	PlayerCount int            `json:"player_count"`
	Mainboard   []CardQuantity `json:"mainboard"`
	Sideboard   []CardQuantity `json:"sideboard"`
	Commanders  []string       `json:"commanders"`
	Archetype   string         `json:"archetype,omitempty"`
}

// CommanderKey returns the deck's commander identity as a canonical
// string: commander names sorted and joined, so partner pairs listed in
// different orders compare equal. Empty when the deck has no commander.
func (d *Deck) CommanderKey() string {
	if len(d.Commanders) == 0 {
		return ""
	}
	names := make([]string, len(d.Commanders))
	copy(names, d.Commanders)
	sort.Strings(names)
	return strings.Join(names, " / ")
}

// Validate checks the deck invariants: quantities are positive and a
// card name appears at most once per board.
func (d *Deck) Validate() error {
	for _, board := range []struct {
		name  string
		cards []CardQuantity
	}{
		{"mainboard", d.Mainboard},
		{"sideboard", d.Sideboard},
	} {
		seen := make(map[string]bool, len(board.cards))
		for _, cq := range board.cards {
			if cq.Qty <= 0 {
				return fmt.Errorf("deck %d: %s card %q has non-positive quantity %d", d.ID, board.name, cq.Card, cq.Qty)
			}
			if cq.Card == "" {
				return fmt.Errorf("deck %d: %s entry has empty card name", d.ID, board.name)
			}
			if seen[cq.Card] {
				return fmt.Errorf("deck %d: %s lists %q more than once", d.ID, board.name, cq.Card)
			}
			seen[cq.Card] = true
		}
	}
	return nil
}

var splitCardRe = regexp.MustCompile(`\s+/\s+`)

// NormalizeSplitCards rewrites single-slash split card names to the
// canonical double-slash form ("Fire / Ice" -> "Fire // Ice").
func (d *Deck) NormalizeSplitCards() {
	for _, board := range [][]CardQuantity{d.Mainboard, d.Sideboard} {
		for i, cq := range board {
			if !strings.Contains(cq.Card, " // ") && splitCardRe.MatchString(cq.Card) {
				board[i].Card = splitCardRe.ReplaceAllString(cq.Card, " // ")
			}
		}
	}
}

// MainboardSize returns the total number of mainboard cards, counting
// quantities.
func (d *Deck) MainboardSize() int {
	total := 0
	for _, cq := range d.Mainboard {
		total += cq.Qty
	}
	return total
}
