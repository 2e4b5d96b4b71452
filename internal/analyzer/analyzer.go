// Package analyzer is the metagame computation engine: pure, in-memory
// aggregation over a selected deck subset and the current configuration
// snapshots. Nothing here blocks or performs I/O; every function takes
// its inputs explicitly and returns freshly built report values.
package analyzer

import (
	"errors"
	"math"

	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
)

// Taxonomy of caller-visible failures. Everything else is fail-open:
// malformed dates and invalid decks are logged and skipped upstream.
var (
	ErrDeckNotFound      = errors.New("deck not found")
	ErrArchetypeNotFound = errors.New("archetype not found")
	ErrPlayerNotFound    = errors.New("player not found")
)

// Options control a metagame report run.
type Options struct {
	PlacementWeighted bool
	IgnoreLands       bool
}

// Report is the full metagame report for one selection.
type Report struct {
	Summary               Summary          `json:"summary"`
	CommanderDistribution []CommanderShare `json:"commander_distribution"`
	ArchetypeDistribution []ArchetypeShare `json:"archetype_distribution"`
	TopCardsMain          []TopCard        `json:"top_cards_main"`
	CardSynergy           []SynergyPair    `json:"card_synergy"`
	PlacementWeighted     bool             `json:"placement_weighted"`
	IgnoreLands           bool             `json:"ignore_lands"`
}

// synergy defaults for the full report: pairs seen in at least two
// decks, thirty rows, and only when the selection has enough decks for
// co-occurrence to mean anything.
const (
	reportSynergyMinDecks  = 2
	reportSynergyTopN      = 30
	reportSynergyMinCorpus = 3
)

// Analyze builds the full metagame report over an already-selected deck
// subset. An empty selection yields a zero summary and empty lists, not
// an error.
func Analyze(decks []deck.Deck, opts Options, weights settings.RankWeights, ignoreSet settings.CardSet) Report {
	r := Report{
		Summary:               Summarize(decks),
		CommanderDistribution: CommanderDistribution(decks, opts, weights),
		ArchetypeDistribution: ArchetypeDistribution(decks, opts, weights),
		TopCardsMain:          TopCardsMain(decks, opts, weights, ignoreSet),
		CardSynergy:           []SynergyPair{},
		PlacementWeighted:     opts.PlacementWeighted,
		IgnoreLands:           opts.IgnoreLands,
	}
	if len(decks) >= reportSynergyMinCorpus {
		r.CardSynergy = Synergy(decks, SynergyOptions{
			MinDecks:    reportSynergyMinDecks,
			TopN:        reportSynergyTopN,
			IgnoreLands: opts.IgnoreLands,
			IgnoreSet:   ignoreSet,
		})
	}
	return r
}

// deckWeight resolves the contribution of one deck: 1 when unweighted,
// otherwise the rank-weight table value (zero for unrecognized labels).
func deckWeight(d *deck.Deck, opts Options, weights settings.RankWeights) float64 {
	if !opts.PlacementWeighted {
		return 1
	}
	return weights.Weight(d.Rank)
}

// round1 rounds to one decimal place, the fixed precision of every
// percentage and weighted count in report output.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
