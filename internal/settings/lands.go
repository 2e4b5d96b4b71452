package settings

// defaultIgnoreLands is the built-in card list excluded from top-card
// and synergy statistics when a report requests ignore_lands. Exact
// full names only; there is no suffix or type-line matching here.
var defaultIgnoreLands = []string{
	// Basic and snow-covered basic lands
	"Plains", "Island", "Swamp", "Mountain", "Forest",
	"Snow-Covered Plains", "Snow-Covered Island", "Snow-Covered Swamp",
	"Snow-Covered Mountain", "Snow-Covered Forest", "Wastes",
	"Command Tower",
	// Original dual lands
	"Tundra", "Underground Sea", "Badlands", "Taiga", "Savannah",
	"Scrubland", "Volcanic Island", "Bayou", "Plateau", "Tropical Island",
	// Fetchlands
	"Arid Mesa", "Marsh Flats", "Misty Rainforest", "Scalding Tarn", "Verdant Catacombs",
	"Flooded Strand", "Polluted Delta", "Windswept Heath", "Wooded Foothills", "Bloodstained Mire",
	// Shocklands
	"Hallowed Fountain", "Temple Garden", "Sacred Foundry", "Stomping Ground", "Breeding Pool",
	"Godless Shrine", "Steam Vents", "Overgrown Tomb", "Blood Crypt", "Watery Grave",
	// Pathways (MDFC lands)
	"Barkchannel Pathway", "Blightstep Pathway", "Boulderloft Pathway", "Branchloft Pathway",
	"Brightclimb Pathway", "Clearwater Pathway", "Cragcrown Pathway", "Darkbore Pathway",
	"Grimclimb Pathway", "Hengegate Pathway", "Ice Tunnel Pathway", "Lavaglide Pathway",
	"Mistgate Pathway", "Murkwater Pathway", "Needleverge Pathway", "Pillarverge Pathway",
	"Riverglide Pathway", "Searstep Pathway", "Shadowgrange Pathway", "Silvergill Pathway",
	"Skyclave Pathway", "Slitherbore Pathway", "Sundown Pass", "Tidechannel Pathway",
	"Timbercrown Pathway", "Vineglimmer Pathway",
	// Fast lands
	"Razorverge Thicket", "Copperline Gorge", "Blackcleave Cliffs", "Seachrome Coast",
	"Darkslick Shores", "Concealed Courtyard", "Inspiring Vantage", "Spirebluff Canal",
	"Botanical Sanctum", "Blooming Marsh",
}

// CardSet is an immutable set of card names.
type CardSet map[string]bool

// NewCardSet builds a set from a name list, trimming blanks.
func NewCardSet(names []string) CardSet {
	set := make(CardSet, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = true
		}
	}
	return set
}

// DefaultIgnoreLands returns the built-in ignore-lands card set.
func DefaultIgnoreLands() CardSet {
	return NewCardSet(defaultIgnoreLands)
}
