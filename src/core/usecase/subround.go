package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
)

// SubroundService manages subrounds: membership, words and the split into games.
type SubroundService struct {
	store   ports.Store
	metrics ports.Metrics
	log     *slog.Logger
}

func NewSubroundService(store ports.Store, metrics ports.Metrics, log *slog.Logger) *SubroundService {
	return &SubroundService{store: store, metrics: metricsOrNoop(metrics), log: log}
}

// Create adds a subround to a round.
func (s *SubroundService) Create(ctx context.Context, userID, roundID int64, name string) (*domain.Subround, error) {
	name, err := validateName("name", name)
	if err != nil {
		return nil, err
	}
	var sub *domain.Subround
	err = s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, err := ownRound(ctx, tx, userID, roundID, true); err != nil {
			return err
		}
		sub, err = tx.CreateSubround(ctx, roundID, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("subround created", "round_id", roundID, "subround_id", sub.ID)
	return sub, nil
}

// List returns the subrounds of a round.
func (s *SubroundService) List(ctx context.Context, userID, roundID int64) ([]domain.Subround, error) {
	var out []domain.Subround
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, err := ownRound(ctx, tx, userID, roundID, false); err != nil {
			return err
		}
		var err error
		out, err = tx.ListSubrounds(ctx, roundID)
		return err
	})
	return out, err
}

// Get returns one subround.
func (s *SubroundService) Get(ctx context.Context, userID, subroundID int64) (*domain.Subround, error) {
	var sub *domain.Subround
	err := s.store.Atomic(ctx, func(tx ports.Tx) (err error) {
		_, sub, err = ownSubround(ctx, tx, userID, subroundID, false)
		return err
	})
	return sub, err
}

// Delete removes a subround. Results of its games are subtracted from the
// round aggregate first.
func (s *SubroundService) Delete(ctx context.Context, userID, subroundID int64) error {
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, sub, err := ownSubround(ctx, tx, userID, subroundID, true)
		if err != nil {
			return err
		}
		if sub.IsSplit() {
			games, err := tx.ListGames(ctx, subroundID)
			if err != nil {
				return err
			}
			if err := domain.UndoSplit(round, sub, games); err != nil {
				return err
			}
			if err := tx.SaveRound(ctx, round); err != nil {
				return err
			}
		}
		return tx.DeleteSubround(ctx, subroundID)
	})
	if err != nil {
		return err
	}
	s.log.Info("subround deleted", "subround_id", subroundID)
	return nil
}

// AddPair makes a round member a member of the subround.
func (s *SubroundService) AddPair(ctx context.Context, userID, subroundID, pairID int64) error {
	return s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, sub, err := ownSubround(ctx, tx, userID, subroundID, true)
		if err != nil {
			return err
		}
		if !round.HasPair(pairID) {
			return domain.NewNotFoundError("pair in round")
		}
		if err := sub.AddPair(pairID); err != nil {
			return err
		}
		return tx.SaveSubround(ctx, sub)
	})
}

// RemovePair removes a pair from an unsplit subround.
func (s *SubroundService) RemovePair(ctx context.Context, userID, subroundID, pairID int64) error {
	return s.store.Atomic(ctx, func(tx ports.Tx) error {
		_, sub, err := ownSubround(ctx, tx, userID, subroundID, true)
		if err != nil {
			return err
		}
		if err := sub.RemovePair(pairID); err != nil {
			return err
		}
		return tx.SaveSubround(ctx, sub)
	})
}

// ListPairs returns the member pairs in join order.
func (s *SubroundService) ListPairs(ctx context.Context, userID, subroundID int64) ([]domain.PlayerPair, error) {
	var out []domain.PlayerPair
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		_, sub, err := ownSubround(ctx, tx, userID, subroundID, false)
		if err != nil {
			return err
		}
		out, err = loadPairs(ctx, tx, sub.Pairs)
		return err
	})
	return out, err
}

// LinkWords takes amount random unused words of a difficulty from the
// tournament's bank and links them to the subround.
func (s *SubroundService) LinkWords(ctx context.Context, userID, subroundID int64, difficulty, amount int) ([]domain.Word, error) {
	ctx, span := tracer.Start(ctx, "SubroundService.LinkWords", trace.WithAttributes(
		attribute.Int64("subround.id", subroundID),
		attribute.Int("words.difficulty", difficulty),
		attribute.Int("words.amount", amount),
	))
	defer span.End()

	var words []domain.Word
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, sub, err := ownSubround(ctx, tx, userID, subroundID, true)
		if err != nil {
			return err
		}
		words, err = takeWords(ctx, tx, round.TournamentID, sub.ID, difficulty, amount)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.metrics.AddWordsTaken(len(words))
	s.log.Info("words linked", "subround_id", subroundID, "difficulty", difficulty, "amount", len(words))
	return words, nil
}

// ListWords returns the words linked to the subround.
func (s *SubroundService) ListWords(ctx context.Context, userID, subroundID int64) ([]domain.Word, error) {
	var out []domain.Word
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, _, err := ownSubround(ctx, tx, userID, subroundID, false); err != nil {
			return err
		}
		var err error
		out, err = tx.ListSubroundWords(ctx, subroundID)
		return err
	})
	return out, err
}

// Split partitions the subround's pairs into the given number of open games.
func (s *SubroundService) Split(ctx context.Context, userID, subroundID int64, games int) ([]domain.Game, error) {
	ctx, span := tracer.Start(ctx, "SubroundService.Split", trace.WithAttributes(
		attribute.Int64("subround.id", subroundID),
		attribute.Int("games", games),
	))
	defer span.End()

	var created []domain.Game
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		_, sub, err := ownSubround(ctx, tx, userID, subroundID, true)
		if err != nil {
			return err
		}
		planned, err := sub.PlanGames(games, newRand())
		if err != nil {
			return err
		}
		created, err = tx.CreateGames(ctx, planned)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.metrics.IncSplits()
	s.metrics.ObserveGamesPerSplit(len(created))
	s.log.Info("subround split", "subround_id", subroundID, "games", len(created))
	return created, nil
}

// UndoSplit deletes the subround's games after subtracting their results.
func (s *SubroundService) UndoSplit(ctx context.Context, userID, subroundID int64) error {
	ctx, span := tracer.Start(ctx, "SubroundService.UndoSplit", trace.WithAttributes(
		attribute.Int64("subround.id", subroundID),
	))
	defer span.End()

	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, sub, err := ownSubround(ctx, tx, userID, subroundID, true)
		if err != nil {
			return err
		}
		games, err := tx.ListGames(ctx, subroundID)
		if err != nil {
			return err
		}
		if err := domain.UndoSplit(round, sub, games); err != nil {
			return err
		}
		if err := tx.SaveRound(ctx, round); err != nil {
			return err
		}
		if err := tx.SaveSubround(ctx, sub); err != nil {
			return err
		}
		return tx.DeleteGames(ctx, subroundID)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.metrics.IncSplitUndos()
	s.log.Info("subround split undone", "subround_id", subroundID)
	return nil
}

// ListGames returns the subround's games.
func (s *SubroundService) ListGames(ctx context.Context, userID, subroundID int64) ([]domain.Game, error) {
	var out []domain.Game
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, _, err := ownSubround(ctx, tx, userID, subroundID, false); err != nil {
			return err
		}
		var err error
		out, err = tx.ListGames(ctx, subroundID)
		return err
	})
	return out, err
}

// Standings returns the subround aggregate, highest score first.
func (s *SubroundService) Standings(ctx context.Context, userID, subroundID int64) ([]domain.Standing, error) {
	var out []domain.Standing
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		_, sub, err := ownSubround(ctx, tx, userID, subroundID, false)
		if err != nil {
			return err
		}
		out = sub.Standings()
		return nil
	})
	return out, err
}
