package analyzer

import (
	"github.com/pdelgado/mtg-metagame/internal/cards"
	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
)

// LandsSplit is a deck's lands-versus-nonlands card count.
type LandsSplit struct {
	Lands    int `json:"lands"`
	Nonlands int `json:"nonlands"`
}

// GroupedCards buckets card entries under a string label (type or color
// group).
type GroupedCards map[string][]deck.CardQuantity

// DeckAnalysis is the composition breakdown of a single deck: mana
// curve, colors, lands split, and type counts, plus the grouped card
// lists a deck page renders. Cards without cached attributes fall back
// to the land rule, CMC 0, and the Other/colorless buckets.
type DeckAnalysis struct {
	ManaCurve               map[int]int                 `json:"mana_curve"`
	ColorDistribution       map[string]float64          `json:"color_distribution"`
	LandsDistribution       LandsSplit                  `json:"lands_distribution"`
	TypeDistribution        map[string]int              `json:"type_distribution"`
	GroupedByType           GroupedCards                `json:"grouped_by_type"`
	GroupedByTypeSideboard  GroupedCards                `json:"grouped_by_type_sideboard"`
	GroupedByCMC            map[int][]deck.CardQuantity `json:"grouped_by_cmc"`
	GroupedByCMCSideboard   map[int][]deck.CardQuantity `json:"grouped_by_cmc_sideboard"`
	GroupedByColor          GroupedCards                `json:"grouped_by_color"`
	GroupedByColorSideboard GroupedCards                `json:"grouped_by_color_sideboard"`
	CardMeta                cards.Map                   `json:"card_meta"`
}

// cardBuckets resolves one card's analysis buckets from its cached
// attributes, or from the land set when the cache has no entry.
func cardBuckets(name string, attrs cards.Map, landSet settings.CardSet) (meta cards.Attributes, known, isLand bool, types []string, cmc int, colorGroup string) {
	meta, known = attrs[name]
	if known {
		isLand = meta.IsLand()
		types = cards.Types(meta.TypeLine)
		cmc = int(meta.CMC)
		colorGroup = meta.ColorGroup()
	} else {
		isLand = landSet[name]
		if isLand {
			types = []string{"Land"}
		} else {
			types = []string{cards.TypeOther}
		}
		colorGroup = cards.ColorColorless
	}
	if isLand {
		colorGroup = "Land"
	}
	return
}

// AnalyzeDeck breaks one deck down by curve, color, type, and lands.
// The multi-type policy is an upper bound: an artifact creature counts
// toward both Artifact and Creature in the type distribution, though it
// appears once, under its primary type, in the grouped list.
func AnalyzeDeck(d *deck.Deck, attrs cards.Map, landSet settings.CardSet) DeckAnalysis {
	a := DeckAnalysis{
		ManaCurve:               make(map[int]int),
		ColorDistribution:       make(map[string]float64),
		TypeDistribution:        make(map[string]int),
		GroupedByType:           make(GroupedCards),
		GroupedByTypeSideboard:  make(GroupedCards),
		GroupedByCMC:            make(map[int][]deck.CardQuantity),
		GroupedByCMCSideboard:   make(map[int][]deck.CardQuantity),
		GroupedByColor:          make(GroupedCards),
		GroupedByColorSideboard: make(GroupedCards),
		CardMeta:                make(cards.Map),
	}

	colorCounts := map[string]int{
		cards.ColorWhite: 0, cards.ColorBlue: 0, cards.ColorBlack: 0,
		cards.ColorRed: 0, cards.ColorGreen: 0, cards.ColorColorless: 0,
	}

	for _, cq := range d.Mainboard {
		meta, known, isLand, types, cmc, colorGroup := cardBuckets(cq.Card, attrs, landSet)

		for _, t := range types {
			a.TypeDistribution[t] += cq.Qty
		}
		a.GroupedByType[types[0]] = append(a.GroupedByType[types[0]], cq)
		a.GroupedByCMC[cmc] = append(a.GroupedByCMC[cmc], cq)
		a.GroupedByColor[colorGroup] = append(a.GroupedByColor[colorGroup], cq)

		if known {
			a.CardMeta[cq.Card] = meta
		}

		if isLand {
			a.LandsDistribution.Lands += cq.Qty
		} else {
			a.LandsDistribution.Nonlands += cq.Qty
			if known {
				a.ManaCurve[cmc] += cq.Qty
			}
		}

		identity := meta.ColorIdentity()
		counted := false
		for _, c := range identity {
			if _, ok := colorCounts[c]; ok {
				colorCounts[c] += cq.Qty
				counted = true
			}
		}
		if !counted && known {
			colorCounts[cards.ColorColorless] += cq.Qty
		}
	}

	for _, cq := range d.Sideboard {
		meta, known, _, types, cmc, colorGroup := cardBuckets(cq.Card, attrs, landSet)
		a.GroupedByTypeSideboard[types[0]] = append(a.GroupedByTypeSideboard[types[0]], cq)
		a.GroupedByCMCSideboard[cmc] = append(a.GroupedByCMCSideboard[cmc], cq)
		a.GroupedByColorSideboard[colorGroup] = append(a.GroupedByColorSideboard[colorGroup], cq)
		if known {
			a.CardMeta[cq.Card] = meta
		}
	}

	totalSlots := 0
	for _, n := range colorCounts {
		totalSlots += n
	}
	for c, n := range colorCounts {
		if totalSlots > 0 {
			a.ColorDistribution[c] = round1(100 * float64(n) / float64(totalSlots))
		} else {
			a.ColorDistribution[c] = 0
		}
	}

	return a
}

// ArchetypeProfile is the average composition of all decks sharing one
// archetype label. Averages are arithmetic over the deck group, never
// placement-weighted.
type ArchetypeProfile struct {
	Archetype            string             `json:"archetype"`
	DeckCount            int                `json:"deck_count"`
	AvgManaCurve         map[int]float64    `json:"avg_mana_curve"`
	AvgColorDistribution map[string]float64 `json:"avg_color_distribution"`
	AvgLands             float64            `json:"avg_lands"`
	AvgNonlands          float64            `json:"avg_nonlands"`
	AvgTypeDistribution  map[string]float64 `json:"avg_type_distribution"`
	TopCards             []TopCard          `json:"top_cards"`
}

// ProfileArchetype averages curve, color, type, and land composition
// across every deck in the selection carrying the archetype label, and
// attaches the archetype's unweighted top mainboard cards. A label with
// zero matching decks is a not-found condition, not a zero-filled
// profile.
func ProfileArchetype(decks []deck.Deck, archetype string, attrs cards.Map, landSet settings.CardSet) (*ArchetypeProfile, error) {
	var group []deck.Deck
	for i := range decks {
		if decks[i].Archetype == archetype {
			group = append(group, decks[i])
		}
	}
	if len(group) == 0 {
		return nil, ErrArchetypeNotFound
	}

	p := &ArchetypeProfile{
		Archetype:            archetype,
		DeckCount:            len(group),
		AvgManaCurve:         make(map[int]float64),
		AvgColorDistribution: make(map[string]float64),
		AvgTypeDistribution:  make(map[string]float64),
	}

	for i := range group {
		a := AnalyzeDeck(&group[i], attrs, landSet)
		for cmc, n := range a.ManaCurve {
			p.AvgManaCurve[cmc] += float64(n)
		}
		for c, pct := range a.ColorDistribution {
			p.AvgColorDistribution[c] += pct
		}
		for t, n := range a.TypeDistribution {
			p.AvgTypeDistribution[t] += float64(n)
		}
		p.AvgLands += float64(a.LandsDistribution.Lands)
		p.AvgNonlands += float64(a.LandsDistribution.Nonlands)
	}

	n := float64(len(group))
	for cmc := range p.AvgManaCurve {
		p.AvgManaCurve[cmc] = round1(p.AvgManaCurve[cmc] / n)
	}
	for c := range p.AvgColorDistribution {
		p.AvgColorDistribution[c] = round1(p.AvgColorDistribution[c] / n)
	}
	for t := range p.AvgTypeDistribution {
		p.AvgTypeDistribution[t] = round1(p.AvgTypeDistribution[t] / n)
	}
	p.AvgLands = round1(p.AvgLands / n)
	p.AvgNonlands = round1(p.AvgNonlands / n)

	p.TopCards = TopCardsMain(group, Options{}, nil, nil)
	return p, nil
}
