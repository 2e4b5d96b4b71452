package deck

// rankOrder maps placement labels to their bracket position. Lower is
// better. Unknown or empty labels sort after every known bracket.
var rankOrder = map[string]int{
	"1":     0,
	"2":     1,
	"3-4":   2,
	"5-8":   3,
	"9-16":  4,
	"17-32": 5,
}

const unrankedOrder = 99

// RankOrder returns the bracket position of a placement label, with
// unknown labels mapped to a sentinel that sorts last.
func RankOrder(rank string) int {
	if pos, ok := rankOrder[rank]; ok {
		return pos
	}
	return unrankedOrder
}

// RankWithinTop reports whether a placement label falls inside the
// top-n bracket threshold: top 1 is the win label, top 2 includes "2",
// top 4 includes "3-4", top 8 includes "5-8".
func RankWithinTop(rank string, n int) bool {
	pos, ok := rankOrder[rank]
	if !ok {
		return false
	}
	switch n {
	case 1:
		return pos == 0
	case 2:
		return pos <= 1
	case 4:
		return pos <= 2
	case 8:
		return pos <= 3
	case 16:
		return pos <= 4
	default:
		return false
	}
}
