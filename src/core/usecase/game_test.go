package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hattournament/src/core/domain"
)

func TestScenario_FourPairsTwoGames(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 4)
	round, sub := e.roundWith(t, "final", pairs)

	games, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 2)
	require.NoError(t, err)
	require.Len(t, games, 2)

	scores := map[int64]int{pairs[0]: 10, pairs[1]: 5, pairs[2]: 7, pairs[3]: 3}
	for _, g := range games {
		require.Len(t, g.Participants, 2)
		_, err := e.games.SubmitResult(e.ctx, e.userID, g.ID, resultFor(g, scores))
		require.NoError(t, err)
	}

	want := domain.Scores(scores)
	assert.Equal(t, want, e.subround(t, sub.ID).Scores)
	assert.Equal(t, want, e.round(t, round.ID).Scores)

	top, err := e.rounds.TopN(e.ctx, e.userID, round.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{pairs[0]}, top)

	assert.Equal(t, 2, e.metrics.ResultsSubmitted())
	assert.Equal(t, 1, e.metrics.Splits())
	assert.Equal(t, []int{2}, e.metrics.GamesPerSplit())
}

func TestSubmitResult_Guards(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 4)
	round, sub := e.roundWith(t, "final", pairs)
	games, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 2)
	require.NoError(t, err)
	g := games[0]

	_, err = e.games.SubmitResult(e.ctx, e.userID, g.ID, domain.Scores{g.Participants[0]: 1})
	assert.True(t, domain.IsParticipantMismatch(err))

	_, err = e.games.GetResult(e.ctx, e.userID, g.ID)
	assert.True(t, domain.IsNotFound(err), "open game has no result")

	first := domain.Scores{g.Participants[0]: 4, g.Participants[1]: 2}
	_, err = e.games.SubmitResult(e.ctx, e.userID, g.ID, first)
	require.NoError(t, err)
	before := e.round(t, round.ID).Scores

	_, err = e.games.SubmitResult(e.ctx, e.userID, g.ID, domain.Scores{g.Participants[0]: 9, g.Participants[1]: 9})
	require.Error(t, err)
	assert.True(t, domain.IsAlreadyExists(err))

	got, err := e.games.GetResult(e.ctx, e.userID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)
	assert.Equal(t, before, e.round(t, round.ID).Scores)
}

func TestClearResult_RoundTrip(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 4)
	round, sub := e.roundWith(t, "final", pairs)
	games, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 2)
	require.NoError(t, err)

	// resolve the other game so aggregates are non-zero before the round trip
	_, err = e.games.SubmitResult(e.ctx, e.userID, games[1].ID, resultFor(games[1], map[int64]int{
		games[1].Participants[0]: 3, games[1].Participants[1]: 8,
	}))
	require.NoError(t, err)

	beforeRound := e.round(t, round.ID).Scores
	beforeSub := e.subround(t, sub.ID).Scores

	g := games[0]
	_, err = e.games.SubmitResult(e.ctx, e.userID, g.ID, domain.Scores{g.Participants[0]: 6, g.Participants[1]: 1})
	require.NoError(t, err)
	require.NoError(t, e.games.ClearResult(e.ctx, e.userID, g.ID))

	assert.Equal(t, beforeRound, e.round(t, round.ID).Scores)
	assert.Equal(t, beforeSub, e.subround(t, sub.ID).Scores)

	err = e.games.ClearResult(e.ctx, e.userID, g.ID)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, 1, e.metrics.ResultsCleared())
}

func TestGame_Participants(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 4)
	_, sub := e.roundWith(t, "final", pairs)
	games, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 1)
	require.NoError(t, err)

	got, err := e.games.Participants(e.ctx, e.userID, games[0].ID)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	_, err = e.games.Participants(e.ctx, e.userID, 9999)
	assert.True(t, domain.IsNotFound(err))
}
