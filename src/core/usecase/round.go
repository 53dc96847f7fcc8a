package usecase

import (
	"context"
	"log/slog"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
)

// RoundService manages rounds, their membership and aggregate ranking.
type RoundService struct {
	store ports.Store
	log   *slog.Logger
}

func NewRoundService(store ports.Store, log *slog.Logger) *RoundService {
	return &RoundService{store: store, log: log}
}

// Create adds a round to a tournament.
func (s *RoundService) Create(ctx context.Context, userID, tournamentID int64, name string) (*domain.Round, error) {
	name, err := validateName("name", name)
	if err != nil {
		return nil, err
	}
	var round *domain.Round
	err = s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, err := ownTournament(ctx, tx, userID, tournamentID); err != nil {
			return err
		}
		round, err = tx.CreateRound(ctx, tournamentID, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("round created", "tournament_id", tournamentID, "round_id", round.ID)
	return round, nil
}

// List returns the rounds of a tournament.
func (s *RoundService) List(ctx context.Context, userID, tournamentID int64) ([]domain.Round, error) {
	var out []domain.Round
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, err := ownTournament(ctx, tx, userID, tournamentID); err != nil {
			return err
		}
		var err error
		out, err = tx.ListRounds(ctx, tournamentID)
		return err
	})
	return out, err
}

// Get returns one round.
func (s *RoundService) Get(ctx context.Context, userID, roundID int64) (*domain.Round, error) {
	var round *domain.Round
	err := s.store.Atomic(ctx, func(tx ports.Tx) (err error) {
		round, err = ownRound(ctx, tx, userID, roundID, false)
		return err
	})
	return round, err
}

// Delete removes a round with its subrounds and games.
func (s *RoundService) Delete(ctx context.Context, userID, roundID int64) error {
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, err := ownRound(ctx, tx, userID, roundID, true); err != nil {
			return err
		}
		return tx.DeleteRound(ctx, roundID)
	})
	if err != nil {
		return err
	}
	s.log.Info("round deleted", "round_id", roundID)
	return nil
}

// AddPair makes a tournament pair a member of the round.
func (s *RoundService) AddPair(ctx context.Context, userID, roundID, pairID int64) error {
	return s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, err := ownRound(ctx, tx, userID, roundID, true)
		if err != nil {
			return err
		}
		if _, err := ownPair(ctx, tx, round.TournamentID, pairID); err != nil {
			return err
		}
		if err := round.AddPair(pairID); err != nil {
			return err
		}
		return tx.SaveRound(ctx, round)
	})
}

// RemovePair removes a pair from the round and from its unsplit subrounds.
func (s *RoundService) RemovePair(ctx context.Context, userID, roundID, pairID int64) error {
	return s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, err := ownRound(ctx, tx, userID, roundID, false); err != nil {
			return err
		}
		return detachPair(ctx, tx, roundID, pairID)
	})
}

// ListPairs returns the member pairs in join order.
func (s *RoundService) ListPairs(ctx context.Context, userID, roundID int64) ([]domain.PlayerPair, error) {
	var out []domain.PlayerPair
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, err := ownRound(ctx, tx, userID, roundID, false)
		if err != nil {
			return err
		}
		out, err = loadPairs(ctx, tx, round.Pairs)
		return err
	})
	return out, err
}

// Standings returns the round aggregate, highest score first.
func (s *RoundService) Standings(ctx context.Context, userID, roundID int64) ([]domain.Standing, error) {
	var out []domain.Standing
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, err := ownRound(ctx, tx, userID, roundID, false)
		if err != nil {
			return err
		}
		out = round.Standings()
		return nil
	})
	return out, err
}

// TopN returns the n best pairs of the round.
func (s *RoundService) TopN(ctx context.Context, userID, roundID int64, n int) ([]int64, error) {
	var out []int64
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, err := ownRound(ctx, tx, userID, roundID, false)
		if err != nil {
			return err
		}
		out, err = round.TopN(n)
		return err
	})
	return out, err
}

func loadPairs(ctx context.Context, tx ports.Tx, ids []int64) ([]domain.PlayerPair, error) {
	out := make([]domain.PlayerPair, 0, len(ids))
	for _, id := range ids {
		p, err := tx.GetPair(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}
