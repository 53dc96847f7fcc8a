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

// GameService records game results and keeps the subround and round
// aggregates in step with them.
type GameService struct {
	store   ports.Store
	metrics ports.Metrics
	log     *slog.Logger
}

func NewGameService(store ports.Store, metrics ports.Metrics, log *slog.Logger) *GameService {
	return &GameService{store: store, metrics: metricsOrNoop(metrics), log: log}
}

// Get returns a game.
func (s *GameService) Get(ctx context.Context, userID, gameID int64) (*domain.Game, error) {
	var g *domain.Game
	err := s.store.Atomic(ctx, func(tx ports.Tx) (err error) {
		_, _, g, err = ownGame(ctx, tx, userID, gameID, false)
		return err
	})
	return g, err
}

// Participants returns the pairs playing in a game.
func (s *GameService) Participants(ctx context.Context, userID, gameID int64) ([]domain.PlayerPair, error) {
	var out []domain.PlayerPair
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		_, _, g, err := ownGame(ctx, tx, userID, gameID, false)
		if err != nil {
			return err
		}
		out, err = loadPairs(ctx, tx, g.Participants)
		return err
	})
	return out, err
}

// SubmitResult resolves a game and adds its result to the subround and
// round aggregates. A game accepts one result until it is cleared.
func (s *GameService) SubmitResult(ctx context.Context, userID, gameID int64, result domain.Scores) (*domain.Game, error) {
	ctx, span := tracer.Start(ctx, "GameService.SubmitResult", trace.WithAttributes(
		attribute.Int64("game.id", gameID),
	))
	defer span.End()

	var g *domain.Game
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, sub, game, err := ownGame(ctx, tx, userID, gameID, true)
		if err != nil {
			return err
		}
		if err := game.SubmitResult(result); err != nil {
			return err
		}
		if err := domain.PropagateAdd(round, sub, game); err != nil {
			return err
		}
		if err := s.save(ctx, tx, round, sub, game); err != nil {
			return err
		}
		g = game
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.metrics.IncResultsSubmitted()
	s.log.Info("game result submitted", "game_id", gameID)
	return g, nil
}

// GetResult returns the result of a resolved game.
func (s *GameService) GetResult(ctx context.Context, userID, gameID int64) (domain.Scores, error) {
	var out domain.Scores
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		_, _, g, err := ownGame(ctx, tx, userID, gameID, false)
		if err != nil {
			return err
		}
		out, err = g.GetResult()
		return err
	})
	return out, err
}

// ClearResult subtracts a game's result from the aggregates and reopens it.
func (s *GameService) ClearResult(ctx context.Context, userID, gameID int64) error {
	ctx, span := tracer.Start(ctx, "GameService.ClearResult", trace.WithAttributes(
		attribute.Int64("game.id", gameID),
	))
	defer span.End()

	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		round, sub, game, err := ownGame(ctx, tx, userID, gameID, true)
		if err != nil {
			return err
		}
		if err := domain.PropagateSubtract(round, sub, game); err != nil {
			return err
		}
		if err := game.ClearResult(); err != nil {
			return err
		}
		return s.save(ctx, tx, round, sub, game)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.metrics.IncResultsCleared()
	s.log.Info("game result cleared", "game_id", gameID)
	return nil
}

func (s *GameService) save(ctx context.Context, tx ports.Tx, round *domain.Round, sub *domain.Subround, g *domain.Game) error {
	if err := tx.SaveGame(ctx, g); err != nil {
		return err
	}
	if err := tx.SaveSubround(ctx, sub); err != nil {
		return err
	}
	return tx.SaveRound(ctx, round)
}
