package analyzer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pdelgado/mtg-metagame/internal/deck"
)

// DuplicateGroup is one equivalence class of decks with byte-identical
// mainboard multisets. The primary is the lowest deck id in the class.
type DuplicateGroup struct {
	PrimaryID    int   `json:"primary_deck_id"`
	DuplicateIDs []int `json:"duplicate_deck_ids"`
}

// DuplicateInfo is the per-deck duplicate view.
type DuplicateInfo struct {
	IsDuplicate      bool  `json:"is_duplicate"`
	DuplicateOf      *int  `json:"duplicate_of"`
	SameMainboardIDs []int `json:"same_mainboard_ids"`
}

// mainboardKey canonicalizes a mainboard multiset: entries sorted by
// card name, each with its quantity. Two decks share a key iff their
// mainboards are exactly equal. Sideboards and commanders are ignored.
func mainboardKey(d *deck.Deck) string {
	entries := make([]string, len(d.Mainboard))
	for i, cq := range d.Mainboard {
		entries[i] = cq.Card + "\x00" + strconv.Itoa(cq.Qty)
	}
	sort.Strings(entries)
	return strings.Join(entries, "\x01")
}

// DuplicateGroups clusters the given decks into duplicate classes and
// returns only the classes with more than one member, sorted by primary
// id. Clustering is scope-dependent: pass the event-filtered subset to
// detect duplicates within those events only.
func DuplicateGroups(decks []deck.Deck) []DuplicateGroup {
	byKey := make(map[string][]int)
	for i := range decks {
		key := mainboardKey(&decks[i])
		byKey[key] = append(byKey[key], decks[i].ID)
	}

	groups := make([]DuplicateGroup, 0)
	for _, ids := range byKey {
		if len(ids) < 2 {
			continue
		}
		sort.Ints(ids)
		groups = append(groups, DuplicateGroup{PrimaryID: ids[0], DuplicateIDs: ids[1:]})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].PrimaryID < groups[j].PrimaryID })
	return groups
}

// DuplicateInfoFor returns the duplicate view for one deck within the
// given scope, or nil when the deck has no duplicates there.
func DuplicateInfoFor(deckID int, decks []deck.Deck) *DuplicateInfo {
	for _, g := range DuplicateGroups(decks) {
		if deckID == g.PrimaryID {
			return &DuplicateInfo{
				IsDuplicate:      false,
				SameMainboardIDs: g.DuplicateIDs,
			}
		}
		for _, id := range g.DuplicateIDs {
			if id != deckID {
				continue
			}
			siblings := make([]int, 0, len(g.DuplicateIDs)-1)
			for _, other := range g.DuplicateIDs {
				if other != deckID {
					siblings = append(siblings, other)
				}
			}
			primary := g.PrimaryID
			return &DuplicateInfo{
				IsDuplicate:      true,
				DuplicateOf:      &primary,
				SameMainboardIDs: siblings,
			}
		}
	}
	return nil
}
