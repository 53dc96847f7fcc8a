package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hattournament/src/core/domain"
)

func TestRound_Lifecycle(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 3)

	round, err := e.rounds.Create(e.ctx, e.userID, e.tournament.ID, "final")
	require.NoError(t, err)
	_, err = e.rounds.Create(e.ctx, e.userID, e.tournament.ID, "final")
	assert.True(t, domain.IsAlreadyExists(err))

	for _, id := range pairs {
		require.NoError(t, e.rounds.AddPair(e.ctx, e.userID, round.ID, id))
	}
	err = e.rounds.AddPair(e.ctx, e.userID, round.ID, pairs[0])
	assert.True(t, domain.IsAlreadyExists(err))
	err = e.rounds.AddPair(e.ctx, e.userID, round.ID, 4242)
	assert.True(t, domain.IsNotFound(err))

	listed, err := e.rounds.ListPairs(e.ctx, e.userID, round.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, pairs[0], listed[0].ID)

	require.NoError(t, e.rounds.RemovePair(e.ctx, e.userID, round.ID, pairs[1]))
	err = e.rounds.RemovePair(e.ctx, e.userID, round.ID, pairs[1])
	assert.True(t, domain.IsNotFound(err))

	rounds, err := e.rounds.List(e.ctx, e.userID, e.tournament.ID)
	require.NoError(t, err)
	assert.Len(t, rounds, 1)

	require.NoError(t, e.rounds.Delete(e.ctx, e.userID, round.ID))
	_, err = e.rounds.Get(e.ctx, e.userID, round.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestRound_DeleteCascades(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 4)
	round, sub := e.roundWith(t, "final", pairs)
	_, err := e.tournaments.AddWord(e.ctx, e.userID, e.tournament.ID, "apple", 1)
	require.NoError(t, err)
	_, err = e.subrounds.LinkWords(e.ctx, e.userID, sub.ID, 1, 1)
	require.NoError(t, err)
	games, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 2)
	require.NoError(t, err)

	require.NoError(t, e.rounds.Delete(e.ctx, e.userID, round.ID))

	_, err = e.subrounds.Get(e.ctx, e.userID, sub.ID)
	assert.True(t, domain.IsNotFound(err))
	_, err = e.games.Get(e.ctx, e.userID, games[0].ID)
	assert.True(t, domain.IsNotFound(err))

	words, err := e.tournaments.ListWords(e.ctx, e.userID, e.tournament.ID)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.True(t, words[0].Consumed, "words are never returned to the pool")

	require.NoError(t, e.tournaments.DeletePair(e.ctx, e.userID, pairs[0]), "games of the deleted round are gone")
}

func TestRound_StandingsAndTopN(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 4)
	round, sub := e.roundWith(t, "final", pairs)
	games, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 1)
	require.NoError(t, err)
	_, err = e.games.SubmitResult(e.ctx, e.userID, games[0].ID, domain.Scores{
		pairs[0]: 1, pairs[1]: 5, pairs[2]: 5, pairs[3]: 0,
	})
	require.NoError(t, err)

	standings, err := e.rounds.Standings(e.ctx, e.userID, round.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Standing{
		{PairID: pairs[1], Score: 5},
		{PairID: pairs[2], Score: 5},
		{PairID: pairs[0], Score: 1},
		{PairID: pairs[3], Score: 0},
	}, standings)

	top, err := e.rounds.TopN(e.ctx, e.userID, round.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{pairs[1], pairs[2]}, top)

	_, err = e.rounds.TopN(e.ctx, e.userID, round.ID, 5)
	assert.True(t, domain.IsValidationError(err))

	subStandings, err := e.subrounds.Standings(e.ctx, e.userID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, standings, subStandings)
}
