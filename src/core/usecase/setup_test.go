package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"hattournament/src/core/domain"
	"hattournament/src/core/usecase"
	"hattournament/src/infra/memstore"
	"hattournament/src/infra/metrics"
)

type env struct {
	ctx         context.Context
	store       *memstore.Store
	metrics     *metrics.Mock
	auth        *usecase.AuthService
	tournaments *usecase.TournamentService
	rounds      *usecase.RoundService
	subrounds   *usecase.SubroundService
	games       *usecase.GameService

	userID     int64
	tournament *domain.Tournament
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	log := discardLogger()
	store := memstore.New()
	m := metrics.NewMock()

	e := &env{
		ctx:         context.Background(),
		store:       store,
		metrics:     m,
		auth:        usecase.NewAuthService(store, 0, 4, log),
		tournaments: usecase.NewTournamentService(store, log),
		rounds:      usecase.NewRoundService(store, log),
		subrounds:   usecase.NewSubroundService(store, m, log),
		games:       usecase.NewGameService(store, m, log),
	}

	user, err := e.auth.Register(e.ctx, "host", "secret")
	require.NoError(t, err)
	e.userID = user.ID

	e.tournament, err = e.tournaments.Create(e.ctx, e.userID, "cup")
	require.NoError(t, err)
	return e
}

// pairs registers n pairs in the tournament.
func (e *env) pairs(t *testing.T, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := range n {
		p, err := e.tournaments.AddPair(e.ctx, e.userID, e.tournament.ID, fmt.Sprintf("p%da", i), fmt.Sprintf("p%db", i))
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return ids
}

// roundWith creates a round and one subround, both holding pairs.
func (e *env) roundWith(t *testing.T, name string, pairs []int64) (*domain.Round, *domain.Subround) {
	t.Helper()
	round, err := e.rounds.Create(e.ctx, e.userID, e.tournament.ID, name)
	require.NoError(t, err)
	sub := e.subroundWith(t, round.ID, name+"-sub", pairs)
	return round, sub
}

// subroundWith creates a subround in roundID holding pairs, adding the
// pairs to the round first when needed.
func (e *env) subroundWith(t *testing.T, roundID int64, name string, pairs []int64) *domain.Subround {
	t.Helper()
	for _, id := range pairs {
		err := e.rounds.AddPair(e.ctx, e.userID, roundID, id)
		if err != nil {
			require.True(t, domain.IsAlreadyExists(err), "unexpected error: %v", err)
		}
	}
	sub, err := e.subrounds.Create(e.ctx, e.userID, roundID, name)
	require.NoError(t, err)
	for _, id := range pairs {
		require.NoError(t, e.subrounds.AddPair(e.ctx, e.userID, sub.ID, id))
	}
	return sub
}

// resultFor builds a result giving every participant of g a score from scores.
func resultFor(g domain.Game, scores map[int64]int) domain.Scores {
	r := domain.Scores{}
	for _, id := range g.Participants {
		r[id] = scores[id]
	}
	return r
}

func (e *env) round(t *testing.T, id int64) *domain.Round {
	t.Helper()
	r, err := e.rounds.Get(e.ctx, e.userID, id)
	require.NoError(t, err)
	return r
}

func (e *env) subround(t *testing.T, id int64) *domain.Subround {
	t.Helper()
	s, err := e.subrounds.Get(e.ctx, e.userID, id)
	require.NoError(t, err)
	return s
}
