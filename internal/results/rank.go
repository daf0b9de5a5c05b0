package results

import (
	"cmp"
	"slices"
)

// Rank returns recs ordered best first: highest score, or fastest time for
// timed records. Equal values keep their original order.
func Rank(recs []Record) []Record {
	out := slices.Clone(recs)
	slices.SortStableFunc(out, func(a, b Record) int {
		if a.Timed {
			return cmp.Compare(a.Elapsed, b.Elapsed)
		}
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}
