// Package settings holds the admin-mutable configuration consumed by
// every aggregator: the player alias map, the placement rank-weight
// table, and the ignore-lands card set. Each map is published as an
// immutable snapshot behind an atomic pointer; admin writes build a new
// snapshot and swap it, so a concurrent report always sees a complete
// table from before or after the change, never a partial one.
package settings

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// UnknownPlayer is the canonical name used for decks with a blank
// player field.
const UnknownPlayer = "(unknown)"

// AliasMap maps an alias player name to its canonical name. Resolution
// is single-hop: adding A->B and B->C does not make A resolve to C.
type AliasMap map[string]string

// Store is the process-wide configuration store.
type Store struct {
	aliases atomic.Pointer[AliasMap]
	weights atomic.Pointer[RankWeights]
	ignore  atomic.Pointer[CardSet]
}

// NewStore returns a store populated with the built-in defaults.
func NewStore() *Store {
	s := &Store{}
	empty := AliasMap{}
	s.aliases.Store(&empty)
	w := DefaultRankWeights()
	s.weights.Store(&w)
	ig := DefaultIgnoreLands()
	s.ignore.Store(&ig)
	return s
}

// Aliases returns the current alias snapshot. Callers must not mutate it.
func (s *Store) Aliases() AliasMap {
	return *s.aliases.Load()
}

// SetAliases replaces the whole alias map. Self-mappings are rejected.
func (s *Store) SetAliases(m AliasMap) error {
	clean := make(AliasMap, len(m))
	for alias, canonical := range m {
		alias, canonical = strings.TrimSpace(alias), strings.TrimSpace(canonical)
		if alias == "" || canonical == "" {
			return fmt.Errorf("alias and canonical name must be non-empty")
		}
		if alias == canonical {
			return fmt.Errorf("alias %q cannot map to itself", alias)
		}
		clean[alias] = canonical
	}
	s.aliases.Store(&clean)
	return nil
}

// AddAlias maps one alias to a canonical player name.
func (s *Store) AddAlias(alias, canonical string) error {
	alias, canonical = strings.TrimSpace(alias), strings.TrimSpace(canonical)
	if alias == "" || canonical == "" {
		return fmt.Errorf("alias and canonical name must be non-empty")
	}
	if alias == canonical {
		return fmt.Errorf("alias %q cannot map to itself", alias)
	}
	cur := *s.aliases.Load()
	next := make(AliasMap, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	next[alias] = canonical
	s.aliases.Store(&next)
	return nil
}

// RemoveAlias deletes an alias mapping. Removing an absent alias is a
// no-op.
func (s *Store) RemoveAlias(alias string) {
	alias = strings.TrimSpace(alias)
	cur := *s.aliases.Load()
	if _, ok := cur[alias]; !ok {
		return
	}
	next := make(AliasMap, len(cur)-1)
	for k, v := range cur {
		if k != alias {
			next[k] = v
		}
	}
	s.aliases.Store(&next)
}

// ResolvePlayer returns the canonical player name for a raw deck player
// field: trimmed, aliased one hop, blank mapped to UnknownPlayer.
// Resolving an already-canonical name returns it unchanged.
func (s *Store) ResolvePlayer(name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		return UnknownPlayer
	}
	if canonical, ok := (*s.aliases.Load())[n]; ok {
		return canonical
	}
	return n
}

// RankWeights returns the current weight table snapshot.
func (s *Store) RankWeights() RankWeights {
	return *s.weights.Load()
}

// SetRankWeights replaces the weight table. Negative weights are rejected.
func (s *Store) SetRankWeights(w RankWeights) error {
	for rank, points := range w {
		if points < 0 {
			return fmt.Errorf("rank %q has negative weight %v", rank, points)
		}
	}
	next := w.clone()
	s.weights.Store(&next)
	return nil
}

// IgnoreLands returns the current ignore-lands card set snapshot.
func (s *Store) IgnoreLands() CardSet {
	return *s.ignore.Load()
}

// IgnoreLandsList returns the ignore-lands cards as a sorted list, the
// shape the admin API and persistence use.
func (s *Store) IgnoreLandsList() []string {
	set := s.IgnoreLands()
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SetIgnoreLands replaces the ignore-lands card list. Blank names are
// dropped, duplicates collapse. The change affects only future
// aggregations.
func (s *Store) SetIgnoreLands(cards []string) {
	set := make(CardSet, len(cards))
	for _, c := range cards {
		c = strings.TrimSpace(c)
		if c != "" {
			set[c] = true
		}
	}
	s.ignore.Store(&set)
}
