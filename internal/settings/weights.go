package settings

// RankWeights maps a placement rank label to the points it scores in
// placement-weighted aggregation and on the player leaderboard.
type RankWeights map[string]float64

// DefaultRankWeights returns the built-in placement weight table.
func DefaultRankWeights() RankWeights {
	return RankWeights{
		"1":     8,
		"2":     6,
		"3-4":   4,
		"5-8":   2,
		"9-16":  1,
		"17-32": 0.5,
	}
}

// Weight returns the points for a rank label. Unrecognized or empty
// labels score zero: the deck still counts toward totals but adds
// nothing to weighted sums.
func (w RankWeights) Weight(rank string) float64 {
	return w[rank]
}

// clone returns a copy so published snapshots are never mutated.
func (w RankWeights) clone() RankWeights {
	out := make(RankWeights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
