package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hattournament/src/core/domain"
)

func TestTournament_OwnershipHidesForeignData(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 4)
	round, sub := e.roundWith(t, "final", pairs)
	games, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 2)
	require.NoError(t, err)

	other, err := e.auth.Register(e.ctx, "guest", "pw")
	require.NoError(t, err)

	_, err = e.tournaments.Get(e.ctx, other.ID, e.tournament.ID)
	assert.True(t, domain.IsNotFound(err))
	_, err = e.rounds.Standings(e.ctx, other.ID, round.ID)
	assert.True(t, domain.IsNotFound(err))
	err = e.subrounds.UndoSplit(e.ctx, other.ID, sub.ID)
	assert.True(t, domain.IsNotFound(err))
	_, err = e.games.SubmitResult(e.ctx, other.ID, games[0].ID, resultFor(games[0], nil))
	assert.True(t, domain.IsNotFound(err))
	err = e.tournaments.DeletePair(e.ctx, other.ID, pairs[0])
	assert.True(t, domain.IsNotFound(err))

	mine, err := e.tournaments.List(e.ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestTournament_Create(t *testing.T) {
	e := setupEnv(t)

	_, err := e.tournaments.Create(e.ctx, e.userID, "cup")
	assert.True(t, domain.IsAlreadyExists(err))

	_, err = e.tournaments.Create(e.ctx, e.userID, "   ")
	assert.True(t, domain.IsValidationError(err))

	_, err = e.tournaments.Create(e.ctx, e.userID, "league")
	require.NoError(t, err)
	list, err := e.tournaments.List(e.ctx, e.userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAddPair_PlayerNamesUnique(t *testing.T) {
	e := setupEnv(t)

	_, err := e.tournaments.AddPair(e.ctx, e.userID, e.tournament.ID, "ann", "bob")
	require.NoError(t, err)

	tests := []struct {
		name          string
		first, second string
		want          func(error) bool
	}{
		{"reused first player", "ann", "cid", domain.IsAlreadyExists},
		{"reused second player", "cid", "bob", domain.IsAlreadyExists},
		{"same player twice", "dan", "dan", domain.IsValidationError},
		{"empty name", "", "eve", domain.IsValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.tournaments.AddPair(e.ctx, e.userID, e.tournament.ID, tt.first, tt.second)
			require.Error(t, err)
			assert.True(t, tt.want(err), "got %v", err)
		})
	}

	pairs, err := e.tournaments.ListPairs(e.ctx, e.userID, e.tournament.ID)
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

func TestDeletePair(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 5)
	round, sub := e.roundWith(t, "final", pairs[:4])
	loose := e.subroundWith(t, round.ID, "loose", []int64{pairs[0]})
	_, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 2)
	require.NoError(t, err)

	err = e.tournaments.DeletePair(e.ctx, e.userID, pairs[0])
	assert.True(t, domain.IsConflict(err), "pair plays in a game")

	require.NoError(t, e.subrounds.UndoSplit(e.ctx, e.userID, sub.ID))
	require.NoError(t, e.tournaments.DeletePair(e.ctx, e.userID, pairs[0]))

	r := e.round(t, round.ID)
	assert.NotContains(t, r.Pairs, pairs[0])
	assert.NotContains(t, r.Scores, pairs[0])
	assert.NotContains(t, e.subround(t, sub.ID).Pairs, pairs[0])
	assert.Empty(t, e.subround(t, loose.ID).Pairs)

	err = e.tournaments.DeletePair(e.ctx, e.userID, pairs[0])
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, e.tournaments.DeletePair(e.ctx, e.userID, pairs[4]), "pair outside any round")
}

func TestWords(t *testing.T) {
	e := setupEnv(t)

	w, err := e.tournaments.AddWord(e.ctx, e.userID, e.tournament.ID, "apple", 1)
	require.NoError(t, err)
	_, err = e.tournaments.AddWord(e.ctx, e.userID, e.tournament.ID, "apple", 2)
	assert.True(t, domain.IsAlreadyExists(err))
	_, err = e.tournaments.AddWord(e.ctx, e.userID, e.tournament.ID, "pear", -1)
	assert.True(t, domain.IsValidationError(err))

	require.NoError(t, e.tournaments.DeleteWord(e.ctx, e.userID, w.ID))
	words, err := e.tournaments.ListWords(e.ctx, e.userID, e.tournament.ID)
	require.NoError(t, err)
	assert.Empty(t, words)
}
