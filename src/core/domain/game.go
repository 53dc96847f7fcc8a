package domain

import "slices"

// NewGame creates an open game for the given cell. Its result starts as a
// zero entry per participant.
func NewGame(subroundID int64, participants []int64) Game {
	return Game{
		SubroundID:   subroundID,
		Participants: slices.Clone(participants),
		Result:       ZeroScores(participants),
	}
}

// HasParticipant reports whether pairID plays in the game.
func (g *Game) HasParticipant(pairID int64) bool {
	return slices.Contains(g.Participants, pairID)
}

// SubmitResult moves an open game to resolved. The result keys must be
// exactly the participants. The caller folds the result into the
// aggregates with PropagateAdd.
func (g *Game) SubmitResult(result Scores) error {
	if g.Resolved {
		return NewAlreadyExistsError("game result")
	}
	if !result.SameKeys(g.Participants) {
		return NewParticipantMismatchError()
	}
	g.Result = result.Clone()
	g.Resolved = true
	return nil
}

// ClearResult moves a resolved game back to open. The caller must have
// subtracted the stored result with PropagateSubtract first.
func (g *Game) ClearResult() error {
	if !g.Resolved {
		return NewNotFoundError("game result")
	}
	g.Resolved = false
	g.Result = ZeroScores(g.Participants)
	return nil
}

// GetResult returns the stored result of a resolved game.
func (g *Game) GetResult() (Scores, error) {
	if !g.Resolved {
		return nil, NewNotFoundError("game result")
	}
	return g.Result.Clone(), nil
}
