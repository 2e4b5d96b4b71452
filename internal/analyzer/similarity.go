package analyzer

import (
	"runtime"
	"sort"
	"sync"

	"github.com/pdelgado/mtg-metagame/internal/deck"
)

// SimilarDeck is one "similar decks" recommendation row.
type SimilarDeck struct {
	DeckID     int     `json:"deck_id"`
	Name       string  `json:"name"`
	Player     string  `json:"player"`
	EventName  string  `json:"event_name"`
	Date       string  `json:"date"`
	Rank       string  `json:"rank"`
	Similarity float64 `json:"similarity"`
}

// DefaultSimilarLimit is the top-K cap used when the caller passes no
// limit.
const DefaultSimilarLimit = 10

// parallelThreshold is the candidate count above which scoring fans out
// across goroutines. Pair scoring is independent, so rows split into
// ranges with no shared mutable state.
const parallelThreshold = 2048

// Similarity scores mainboard overlap between two decks as a 0-100
// percentage. The measure is the quantity-weighted Dice coefficient:
//
//	100 * 2 * sum(min(qtyA[c], qtyB[c])) / (sum(qtyA) + sum(qtyB))
//
// It is symmetric, 100 for identical multisets, and 0 for disjoint
// ones. The result is rounded to one decimal place; that rounding is
// part of the report contract.
func Similarity(a, b *deck.Deck) float64 {
	sizeA, sizeB := a.MainboardSize(), b.MainboardSize()
	if sizeA == 0 || sizeB == 0 {
		return 0
	}
	qtyA := make(map[string]int, len(a.Mainboard))
	for _, cq := range a.Mainboard {
		qtyA[cq.Card] = cq.Qty
	}
	overlap := 0
	for _, cq := range b.Mainboard {
		if qa := qtyA[cq.Card]; qa > 0 {
			if cq.Qty < qa {
				overlap += cq.Qty
			} else {
				overlap += qa
			}
		}
	}
	return round1(100 * 2 * float64(overlap) / float64(sizeA+sizeB))
}

// SimilarDecks returns the top-limit candidates by mainboard similarity
// to the target, excluding the target itself and empty mainboards.
// Ties break by deck id ascending so results are stable.
func SimilarDecks(target *deck.Deck, candidates []deck.Deck, limit int) []SimilarDeck {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	if target.MainboardSize() == 0 {
		return []SimilarDeck{}
	}

	scores := make([]float64, len(candidates))
	scoreRange := func(from, to int) {
		for i := from; i < to; i++ {
			if candidates[i].ID == target.ID {
				scores[i] = -1
				continue
			}
			scores[i] = Similarity(target, &candidates[i])
		}
	}

	if len(candidates) >= parallelThreshold {
		workers := runtime.GOMAXPROCS(0)
		chunk := (len(candidates) + workers - 1) / workers
		var wg sync.WaitGroup
		for from := 0; from < len(candidates); from += chunk {
			to := from + chunk
			if to > len(candidates) {
				to = len(candidates)
			}
			wg.Add(1)
			go func(from, to int) {
				defer wg.Done()
				scoreRange(from, to)
			}(from, to)
		}
		wg.Wait()
	} else {
		scoreRange(0, len(candidates))
	}

	order := make([]int, 0, len(candidates))
	for i := range candidates {
		if scores[i] >= 0 && candidates[i].MainboardSize() > 0 {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if scores[order[i]] != scores[order[j]] {
			return scores[order[i]] > scores[order[j]]
		}
		return candidates[order[i]].ID < candidates[order[j]].ID
	})
	if len(order) > limit {
		order = order[:limit]
	}

	out := make([]SimilarDeck, len(order))
	for i, idx := range order {
		d := &candidates[idx]
		out[i] = SimilarDeck{
			DeckID:     d.ID,
			Name:       d.Name,
			Player:     d.Player,
			EventName:  d.EventName,
			Date:       d.Date,
			Rank:       d.Rank,
			Similarity: scores[idx],
		}
	}
	return out
}
