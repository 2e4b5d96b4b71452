package deck

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var searchNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch lowercases a string and strips combining accents so
// substring filters match regardless of diacritics ("Pérez" matches
// "perez").
func NormalizeSearch(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(searchNormalizer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

func dateIntOrZero(date string) int {
	if n, ok := dateKeyInt(date); ok {
		return n
	}
	return 0
}

// Sort orders decks in place by the given key ("date", "rank",
// "player", or "name") and order ("asc" or "desc"). Date sorts break
// ties by placement, rank sorts break ties by date descending; unknown
// keys fall back to date descending.
func Sort(decks []Deck, sortBy, order string) {
	desc := order != "asc"
	var less func(a, b *Deck) bool
	switch sortBy {
	case "rank":
		less = func(a, b *Deck) bool {
			ra, rb := RankOrder(a.Rank), RankOrder(b.Rank)
			if ra != rb {
				if desc {
					return ra > rb
				}
				return ra < rb
			}
			return dateIntOrZero(a.Date) > dateIntOrZero(b.Date)
		}
	case "player":
		less = func(a, b *Deck) bool {
			pa, pb := strings.ToLower(a.Player), strings.ToLower(b.Player)
			if desc {
				return pa > pb
			}
			return pa < pb
		}
	case "name":
		less = func(a, b *Deck) bool {
			na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if desc {
				return na > nb
			}
			return na < nb
		}
	default: // date
		less = func(a, b *Deck) bool {
			da, db := dateIntOrZero(a.Date), dateIntOrZero(b.Date)
			if da != db {
				if desc {
					return da > db
				}
				return da < db
			}
			return RankOrder(a.Rank) < RankOrder(b.Rank)
		}
	}
	sort.SliceStable(decks, func(i, j int) bool { return less(&decks[i], &decks[j]) })
}
