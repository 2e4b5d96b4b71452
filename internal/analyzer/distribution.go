package analyzer

import (
	"sort"

	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
)

// Summary is the headline block of a metagame report. Counts are
// unweighted regardless of report options.
type Summary struct {
	TotalDecks       int `json:"total_decks"`
	UniqueCommanders int `json:"unique_commanders"`
	UniqueArchetypes int `json:"unique_archetypes"`
}

// CommanderShare is one commander identity's slice of the metagame.
type CommanderShare struct {
	Commander string  `json:"commander"`
	Count     float64 `json:"count"`
	Pct       float64 `json:"pct"`
}

// ArchetypeShare is one archetype label's slice of the metagame.
type ArchetypeShare struct {
	Archetype string  `json:"archetype"`
	Count     float64 `json:"count"`
	Pct       float64 `json:"pct"`
}

// TopCard is one row of a top-cards list.
type TopCard struct {
	Card        string  `json:"card"`
	Decks       int     `json:"decks"`
	PlayRatePct float64 `json:"play_rate_pct"`
	TotalCopies int     `json:"total_copies"`
}

// topCardsCap bounds top-card list length.
const topCardsCap = 100

// Summarize computes the unweighted selection summary.
func Summarize(decks []deck.Deck) Summary {
	commanders := make(map[string]bool)
	archetypes := make(map[string]bool)
	for i := range decks {
		if key := decks[i].CommanderKey(); key != "" {
			commanders[key] = true
		}
		if decks[i].Archetype != "" {
			archetypes[decks[i].Archetype] = true
		}
	}
	return Summary{
		TotalDecks:       len(decks),
		UniqueCommanders: len(commanders),
		UniqueArchetypes: len(archetypes),
	}
}

// totalWeight sums the weight of every selected deck, the percentage
// denominator for both distributions.
func totalWeight(decks []deck.Deck, opts Options, weights settings.RankWeights) float64 {
	total := 0.0
	for i := range decks {
		total += deckWeight(&decks[i], opts, weights)
	}
	return total
}

// distribute groups deck weights by a label and emits shares sorted by
// count descending, label ascending on ties. Decks with an empty label
// are excluded from the grouping but stay in the percentage
// denominator, so shares sum below 100 when some decks are unlabeled.
func distribute(decks []deck.Deck, opts Options, weights settings.RankWeights, label func(*deck.Deck) string) []struct {
	name  string
	count float64
	pct   float64
} {
	scores := make(map[string]float64)
	for i := range decks {
		key := label(&decks[i])
		if key == "" {
			continue
		}
		scores[key] += deckWeight(&decks[i], opts, weights)
	}

	total := totalWeight(decks, opts, weights)
	out := make([]struct {
		name  string
		count float64
		pct   float64
	}, 0, len(scores))
	for name, count := range scores {
		pct := 0.0
		if total > 0 {
			pct = round1(100 * count / total)
		}
		out = append(out, struct {
			name  string
			count float64
			pct   float64
		}{name, round1(count), pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

// CommanderDistribution groups selected decks by commander identity.
// Two decks listing the same partners in different orders land in the
// same group; decks with no commander are left out of the distribution.
func CommanderDistribution(decks []deck.Deck, opts Options, weights settings.RankWeights) []CommanderShare {
	rows := distribute(decks, opts, weights, (*deck.Deck).CommanderKey)
	out := make([]CommanderShare, len(rows))
	for i, r := range rows {
		out[i] = CommanderShare{Commander: r.name, Count: r.count, Pct: r.pct}
	}
	return out
}

// ArchetypeDistribution groups selected decks by archetype label. Decks
// without an archetype are excluded from the distribution but still
// count toward the total-deck denominator.
func ArchetypeDistribution(decks []deck.Deck, opts Options, weights settings.RankWeights) []ArchetypeShare {
	rows := distribute(decks, opts, weights, func(d *deck.Deck) string { return d.Archetype })
	out := make([]ArchetypeShare, len(rows))
	for i, r := range rows {
		out[i] = ArchetypeShare{Archetype: r.name, Count: r.count, Pct: r.pct}
	}
	return out
}

// topCards is the shared top-card aggregation over one board selector.
func topCards(decks []deck.Deck, opts Options, weights settings.RankWeights, ignoreSet settings.CardSet, board func(*deck.Deck) []deck.CardQuantity) []TopCard {
	type cardAgg struct {
		decks  int
		copies int
		score  float64
	}
	agg := make(map[string]*cardAgg)

	for i := range decks {
		w := deckWeight(&decks[i], opts, weights)
		for _, cq := range board(&decks[i]) {
			if opts.IgnoreLands && ignoreSet[cq.Card] {
				continue
			}
			a := agg[cq.Card]
			if a == nil {
				a = &cardAgg{}
				agg[cq.Card] = a
			}
			a.decks++
			a.copies += cq.Qty
			if opts.PlacementWeighted {
				a.score += w
			} else {
				a.score++
			}
		}
	}

	out := make([]TopCard, 0, len(agg))
	names := make([]string, 0, len(agg))
	for name := range agg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := agg[names[i]], agg[names[j]]
		if a.score != b.score {
			return a.score > b.score
		}
		return names[i] < names[j]
	})

	total := len(decks)
	for _, name := range names {
		a := agg[name]
		pct := 0.0
		if total > 0 {
			pct = round1(100 * float64(a.decks) / float64(total))
		}
		out = append(out, TopCard{
			Card:        name,
			Decks:       a.decks,
			PlayRatePct: pct,
			TotalCopies: a.copies,
		})
		if len(out) >= topCardsCap {
			break
		}
	}
	return out
}

// TopCardsMain ranks mainboard cards by deck presence (weighted when
// the report is placement-weighted), capped at 100 rows.
func TopCardsMain(decks []deck.Deck, opts Options, weights settings.RankWeights, ignoreSet settings.CardSet) []TopCard {
	return topCards(decks, opts, weights, ignoreSet, func(d *deck.Deck) []deck.CardQuantity { return d.Mainboard })
}

// TopCardsSideboard is the sideboard counterpart of TopCardsMain. The
// ignore-lands set does not apply to sideboards.
func TopCardsSideboard(decks []deck.Deck, opts Options, weights settings.RankWeights) []TopCard {
	noIgnore := opts
	noIgnore.IgnoreLands = false
	return topCards(decks, noIgnore, weights, nil, func(d *deck.Deck) []deck.CardQuantity { return d.Sideboard })
}
