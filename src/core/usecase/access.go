package usecase

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
)

var tracer = otel.Tracer("hattournament/usecase")

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ownTournament loads a tournament owned by userID. Tournaments of other
// users are reported as missing.
func ownTournament(ctx context.Context, tx ports.Tx, userID, tournamentID int64) (*domain.Tournament, error) {
	t, err := tx.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !t.OwnedBy(userID) {
		return nil, domain.NewNotFoundError("tournament")
	}
	return t, nil
}

// ownRound loads a round of a tournament owned by userID. With lock set the
// round row stays locked until the unit of work ends.
func ownRound(ctx context.Context, tx ports.Tx, userID, roundID int64, lock bool) (*domain.Round, error) {
	var (
		round *domain.Round
		err   error
	)
	if lock {
		round, err = tx.LockRound(ctx, roundID)
	} else {
		round, err = tx.GetRound(ctx, roundID)
	}
	if err != nil {
		return nil, err
	}
	if _, err := ownTournament(ctx, tx, userID, round.TournamentID); err != nil {
		return nil, err
	}
	return round, nil
}

// ownSubround loads a subround and its round. When locking, the subround is
// read again after the round lock is held so it reflects committed state.
func ownSubround(ctx context.Context, tx ports.Tx, userID, subroundID int64, lock bool) (*domain.Round, *domain.Subround, error) {
	sub, err := tx.GetSubround(ctx, subroundID)
	if err != nil {
		return nil, nil, err
	}
	round, err := ownRound(ctx, tx, userID, sub.RoundID, lock)
	if err != nil {
		return nil, nil, err
	}
	if lock {
		if sub, err = tx.GetSubround(ctx, subroundID); err != nil {
			return nil, nil, err
		}
	}
	return round, sub, nil
}

// ownGame loads a game with its subround and round.
func ownGame(ctx context.Context, tx ports.Tx, userID, gameID int64, lock bool) (*domain.Round, *domain.Subround, *domain.Game, error) {
	g, err := tx.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, nil, err
	}
	round, sub, err := ownSubround(ctx, tx, userID, g.SubroundID, lock)
	if err != nil {
		return nil, nil, nil, err
	}
	if lock {
		if g, err = tx.GetGame(ctx, gameID); err != nil {
			return nil, nil, nil, err
		}
	}
	return round, sub, g, nil
}

// ownPair loads a pair of the given tournament.
func ownPair(ctx context.Context, tx ports.Tx, tournamentID, pairID int64) (*domain.PlayerPair, error) {
	p, err := tx.GetPair(ctx, pairID)
	if err != nil {
		return nil, err
	}
	if p.TournamentID != tournamentID {
		return nil, domain.NewNotFoundError("pair")
	}
	return p, nil
}

func validateName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError(field, "cannot be empty")
	}
	if len(name) > domain.MaxNameLength {
		return "", domain.NewValidationError(field, "too long")
	}
	return name, nil
}

type noopMetrics struct{}

func (noopMetrics) IncResultsSubmitted()     {}
func (noopMetrics) IncResultsCleared()       {}
func (noopMetrics) IncSplits()               {}
func (noopMetrics) IncSplitUndos()           {}
func (noopMetrics) AddWordsTaken(int)        {}
func (noopMetrics) ObserveGamesPerSplit(int) {}

func metricsOrNoop(m ports.Metrics) ports.Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
