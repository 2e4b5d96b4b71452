package deck

// Filter selects the subset of the corpus a report runs over. An
// explicit event-id set takes precedence over the date range; with no
// constraints every deck matches.
type Filter struct {
	DateFrom string // DD/MM/YY, inclusive
	DateTo   string // DD/MM/YY, inclusive
	EventIDs []int
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return f.DateFrom == "" && f.DateTo == "" && len(f.EventIDs) == 0
}

// Apply returns the decks matching the filter. The input slice is never
// modified; when nothing is filtered out it is returned as-is.
func (f Filter) Apply(decks []Deck) []Deck {
	if len(f.EventIDs) > 0 {
		ids := make(map[int]bool, len(f.EventIDs))
		for _, id := range f.EventIDs {
			ids[id] = true
		}
		out := make([]Deck, 0, len(decks))
		for _, d := range decks {
			if ids[d.EventID] {
				out = append(out, d)
			}
		}
		return out
	}
	if f.DateFrom == "" && f.DateTo == "" {
		return decks
	}
	out := make([]Deck, 0, len(decks))
	for _, d := range decks {
		if DateInRange(d.Date, f.DateFrom, f.DateTo) {
			out = append(out, d)
		}
	}
	return out
}
