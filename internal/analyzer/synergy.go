package analyzer

import (
	"sort"

	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
)

// SynergyPair is one co-occurring card pair. CardA sorts before CardB,
// so (A,B) and (B,A) are always the same entry.
type SynergyPair struct {
	CardA string `json:"card_a"`
	CardB string `json:"card_b"`
	Decks int    `json:"decks"`
}

// SynergyOptions control the co-occurrence scan.
type SynergyOptions struct {
	// MinDecks drops pairs seen in fewer decks. Zero means no floor.
	MinDecks int
	// TopN caps the result length. Zero falls back to the default cap.
	TopN int
	// IgnoreLands excludes cards in IgnoreSet from pairing.
	IgnoreLands bool
	IgnoreSet   settings.CardSet
}

// defaultSynergyTopN caps synergy output generously enough for
// client-side paging.
const defaultSynergyTopN = 50

type pairKey struct{ a, b string }

// Synergy counts, for every unordered pair of distinct mainboard cards,
// the decks whose mainboards contain both. Quantities do not matter:
// one deck is one increment. Pairs come back sorted by count
// descending, then lexicographically for determinism.
func Synergy(decks []deck.Deck, opts SynergyOptions) []SynergyPair {
	topN := opts.TopN
	if topN <= 0 {
		topN = defaultSynergyTopN
	}

	counts := make(map[pairKey]int)
	for i := range decks {
		seen := make(map[string]bool, len(decks[i].Mainboard))
		for _, cq := range decks[i].Mainboard {
			if opts.IgnoreLands && opts.IgnoreSet[cq.Card] {
				continue
			}
			seen[cq.Card] = true
		}
		names := make([]string, 0, len(seen))
		for name := range seen {
			names = append(names, name)
		}
		sort.Strings(names)
		for a := 0; a < len(names); a++ {
			for b := a + 1; b < len(names); b++ {
				counts[pairKey{names[a], names[b]}]++
			}
		}
	}

	pairs := make([]SynergyPair, 0, len(counts))
	for key, n := range counts {
		if n < opts.MinDecks {
			continue
		}
		pairs = append(pairs, SynergyPair{CardA: key.a, CardB: key.b, Decks: n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Decks != pairs[j].Decks {
			return pairs[i].Decks > pairs[j].Decks
		}
		if pairs[i].CardA != pairs[j].CardA {
			return pairs[i].CardA < pairs[j].CardA
		}
		return pairs[i].CardB < pairs[j].CardB
	})
	if len(pairs) > topN {
		pairs = pairs[:topN]
	}
	return pairs
}
