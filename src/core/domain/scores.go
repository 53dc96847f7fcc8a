package domain

import (
	"maps"
	"slices"
	"sort"
)

// Scores maps a player pair id to a score. Used both for single game
// results and for the running aggregates of subrounds and rounds.
type Scores map[int64]int

// ZeroScores returns a map with a zero entry for every pair.
func ZeroScores(pairs []int64) Scores {
	s := make(Scores, len(pairs))
	for _, id := range pairs {
		s[id] = 0
	}
	return s
}

// Clone returns a copy of s. A nil map clones to an empty one.
func (s Scores) Clone() Scores {
	if s == nil {
		return Scores{}
	}
	return maps.Clone(s)
}

// Add adds delta entrywise. Keys missing from s count as zero.
func (s Scores) Add(delta Scores) {
	for id, v := range delta {
		s[id] += v
	}
}

// Sub subtracts delta entrywise. Keys missing from s count as zero.
func (s Scores) Sub(delta Scores) {
	for id, v := range delta {
		s[id] -= v
	}
}

// Keys returns the pair ids in ascending order.
func (s Scores) Keys() []int64 {
	return slices.Sorted(maps.Keys(s))
}

// SameKeys reports whether s has exactly the given pair ids as keys.
func (s Scores) SameKeys(pairs []int64) bool {
	if len(s) != len(pairs) {
		return false
	}
	for _, id := range pairs {
		if _, ok := s[id]; !ok {
			return false
		}
	}
	return true
}

// Standing is one row of a ranking.
type Standing struct {
	PairID int64 `json:"pair_id"`
	Score  int   `json:"score"`
}

// Rank orders the pairs in order by descending score. Equal scores keep
// their relative position in order. Pairs without an entry score zero.
func Rank(order []int64, scores Scores) []Standing {
	out := make([]Standing, 0, len(order))
	for _, id := range order {
		out = append(out, Standing{PairID: id, Score: scores[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
