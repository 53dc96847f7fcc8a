package domain

import (
	"fmt"
	"slices"
)

// AddPair makes pairID a member with a zero aggregate entry.
func (r *Round) AddPair(pairID int64) error {
	if r.HasPair(pairID) {
		return NewAlreadyExistsError("pair in round")
	}
	r.Pairs = append(r.Pairs, pairID)
	if r.Scores == nil {
		r.Scores = Scores{}
	}
	r.Scores[pairID] = 0
	return nil
}

// RemovePair drops pairID from the round and from every subround in subs
// that has it. It fails with ErrConflict, changing nothing, when one of
// those subrounds is split. The returned subrounds are the ones modified.
func (r *Round) RemovePair(pairID int64, subs []Subround) ([]*Subround, error) {
	i := slices.Index(r.Pairs, pairID)
	if i < 0 {
		return nil, NewNotFoundError("pair in round")
	}

	var touched []*Subround
	for j := range subs {
		if !subs[j].HasPair(pairID) {
			continue
		}
		if subs[j].IsSplit() {
			return nil, NewConflictError(fmt.Sprintf("pair plays in split subround %q", subs[j].Name))
		}
		touched = append(touched, &subs[j])
	}
	for _, s := range touched {
		if err := s.RemovePair(pairID); err != nil {
			return nil, err
		}
	}

	r.Pairs = slices.Delete(r.Pairs, i, i+1)
	delete(r.Scores, pairID)
	return touched, nil
}

// Standings ranks the member pairs by aggregate score, highest first.
func (r *Round) Standings() []Standing {
	return Rank(r.Pairs, r.Scores)
}

// TopN returns the n best pairs. Ties keep the order in which pairs joined.
func (r *Round) TopN(n int) ([]int64, error) {
	if n <= 0 || n > len(r.Pairs) {
		return nil, NewValidationError("n", fmt.Sprintf("must be between 1 and %d", len(r.Pairs)))
	}
	standings := r.Standings()[:n]
	out := make([]int64, 0, n)
	for _, s := range standings {
		out = append(out, s.PairID)
	}
	return out, nil
}
