package domain

import "fmt"

// PropagateAdd folds a resolved game's result into its subround and round
// aggregates. Call it exactly once, right after Game.SubmitResult.
func PropagateAdd(round *Round, sub *Subround, g *Game) error {
	if err := checkLineage(round, sub, g); err != nil {
		return err
	}
	sub.Scores.Add(g.Result)
	round.Scores.Add(g.Result)
	return nil
}

// PropagateSubtract removes a resolved game's result from its subround and
// round aggregates. Call it exactly once, right before Game.ClearResult.
func PropagateSubtract(round *Round, sub *Subround, g *Game) error {
	if err := checkLineage(round, sub, g); err != nil {
		return err
	}
	sub.Scores.Sub(g.Result)
	round.Scores.Sub(g.Result)
	return nil
}

func checkLineage(round *Round, sub *Subround, g *Game) error {
	if g.SubroundID != sub.ID {
		return NewInternalError(fmt.Sprintf("game %d does not belong to subround %d", g.ID, sub.ID))
	}
	if sub.RoundID != round.ID {
		return NewInternalError(fmt.Sprintf("subround %d does not belong to round %d", sub.ID, round.ID))
	}
	if !g.Resolved {
		return NewNotFoundError("game result")
	}
	if sub.Scores == nil {
		sub.Scores = Scores{}
	}
	if round.Scores == nil {
		round.Scores = Scores{}
	}
	return nil
}
