package analyzer

import (
	"sort"
	"strings"

	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
)

// PlayerStats is one leaderboard row, keyed by canonical player name.
type PlayerStats struct {
	Player    string  `json:"player"`
	Wins      int     `json:"wins"`
	Top2      int     `json:"top2"`
	Top4      int     `json:"top4"`
	Top8      int     `json:"top8"`
	Points    float64 `json:"points"`
	DeckCount int     `json:"deck_count"`
}

// Leaderboard aggregates placement stats per canonical player over the
// selected decks. Player names resolve through the alias map before
// grouping. Rows sort by the chosen key ("wins", "points", or "decks"),
// always falling back to wins desc, points desc, name asc.
func Leaderboard(decks []deck.Deck, store *settings.Store, sortBy string) []PlayerStats {
	weights := store.RankWeights()
	stats := make(map[string]*PlayerStats)
	for i := range decks {
		d := &decks[i]
		player := store.ResolvePlayer(d.Player)
		s := stats[player]
		if s == nil {
			s = &PlayerStats{Player: player}
			stats[player] = s
		}
		s.DeckCount++
		s.Points += weights.Weight(d.Rank)
		if deck.RankWithinTop(d.Rank, 1) {
			s.Wins++
		}
		if deck.RankWithinTop(d.Rank, 2) {
			s.Top2++
		}
		if deck.RankWithinTop(d.Rank, 4) {
			s.Top4++
		}
		if deck.RankWithinTop(d.Rank, 8) {
			s.Top8++
		}
	}

	rows := make([]PlayerStats, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, *s)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		switch sortBy {
		case "points":
			if a.Points != b.Points {
				return a.Points > b.Points
			}
		case "decks":
			if a.DeckCount != b.DeckCount {
				return a.DeckCount > b.DeckCount
			}
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.Player < b.Player
	})
	return rows
}

// PlayerDetail returns the stats row for one player, identified by raw
// or canonical name, together with the player's decks. Returns
// ErrPlayerNotFound when no deck resolves to that player.
func PlayerDetail(name string, decks []deck.Deck, store *settings.Store) (PlayerStats, []deck.Deck, error) {
	canonical := store.ResolvePlayer(name)
	var owned []deck.Deck
	for i := range decks {
		if store.ResolvePlayer(decks[i].Player) == canonical {
			owned = append(owned, decks[i])
		}
	}
	if len(owned) == 0 {
		return PlayerStats{}, nil, ErrPlayerNotFound
	}
	rows := Leaderboard(owned, store, "")
	deck.Sort(owned, "date", "desc")
	return rows[0], owned, nil
}

// SimilarPlayers suggests canonical-name merge candidates for a player
// name by cheap string similarity: exact normalized match first, then
// substring containment, then shared-word overlap. Card data plays no
// part here.
func SimilarPlayers(name string, decks []deck.Deck, store *settings.Store, limit int) []string {
	if limit <= 0 {
		limit = 10
	}
	target := deck.NormalizeSearch(strings.TrimSpace(name))
	if target == "" {
		return []string{}
	}
	targetWords := make(map[string]bool)
	for _, w := range strings.Fields(target) {
		targetWords[w] = true
	}

	const noMatch = 99
	score := func(n string) int {
		nn := deck.NormalizeSearch(n)
		if nn == target {
			return 0
		}
		if strings.Contains(nn, target) || strings.Contains(target, nn) {
			return 1
		}
		overlap := 0
		for _, w := range strings.Fields(nn) {
			if targetWords[w] {
				overlap++
			}
		}
		if overlap > 0 {
			return 10 - overlap
		}
		return noMatch
	}

	seen := make(map[string]bool)
	var names []string
	for i := range decks {
		n := strings.TrimSpace(decks[i].Player)
		if n == "" || n == settings.UnknownPlayer || seen[n] {
			continue
		}
		seen[n] = true
		if score(n) < noMatch {
			names = append(names, n)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		si, sj := score(names[i]), score(names[j])
		if si != sj {
			return si < sj
		}
		return names[i] < names[j]
	})
	if len(names) > limit {
		names = names[:limit]
	}
	if names == nil {
		names = []string{}
	}
	return names
}
