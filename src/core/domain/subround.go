package domain

import (
	"math/rand"
	"slices"
)

// IsSplit reports whether the subround owns games.
func (s *Subround) IsSplit() bool {
	return len(s.Games) > 0
}

// PlanGames partitions the member pairs into k open games. The games carry
// no ids yet; once stored, record them with AttachGames. Fails with
// ErrAlreadyExists when the subround is already split.
func (s *Subround) PlanGames(k int, rng *rand.Rand) ([]Game, error) {
	if s.IsSplit() {
		return nil, NewAlreadyExistsError("subround split")
	}
	cells, err := Partition(s.Pairs, k, rng)
	if err != nil {
		return nil, err
	}
	games := make([]Game, 0, len(cells))
	for _, cell := range cells {
		games = append(games, NewGame(s.ID, cell))
	}
	return games, nil
}

// AttachGames records the ids of freshly stored games.
func (s *Subround) AttachGames(games []Game) {
	for _, g := range games {
		s.Games = append(s.Games, g.ID)
	}
}

// UndoSplit subtracts every resolved game from the aggregates, clears the
// results and returns the subround to the unsplit state. games must be the
// subround's games; the caller deletes them afterwards.
func UndoSplit(round *Round, sub *Subround, games []Game) error {
	if !sub.IsSplit() {
		return NewNotFoundError("subround split")
	}
	for i := range games {
		if !games[i].Resolved {
			continue
		}
		if err := PropagateSubtract(round, sub, &games[i]); err != nil {
			return err
		}
		if err := games[i].ClearResult(); err != nil {
			return err
		}
	}
	sub.Games = nil
	return nil
}

// AddPair makes pairID a member with a zero aggregate entry. Membership is
// frozen while the subround is split.
func (s *Subround) AddPair(pairID int64) error {
	if s.IsSplit() {
		return NewConflictError("subround is split")
	}
	if s.HasPair(pairID) {
		return NewAlreadyExistsError("pair in subround")
	}
	s.Pairs = append(s.Pairs, pairID)
	if s.Scores == nil {
		s.Scores = Scores{}
	}
	s.Scores[pairID] = 0
	return nil
}

// RemovePair drops pairID and its aggregate entry.
func (s *Subround) RemovePair(pairID int64) error {
	if s.IsSplit() {
		return NewConflictError("subround is split")
	}
	i := slices.Index(s.Pairs, pairID)
	if i < 0 {
		return NewNotFoundError("pair in subround")
	}
	s.Pairs = slices.Delete(s.Pairs, i, i+1)
	delete(s.Scores, pairID)
	return nil
}

// LinkWords appends freshly taken words to the subround.
func (s *Subround) LinkWords(words []Word) {
	for _, w := range words {
		s.Words = append(s.Words, w.ID)
	}
}

// Standings ranks the member pairs by aggregate score.
func (s *Subround) Standings() []Standing {
	return Rank(s.Pairs, s.Scores)
}
