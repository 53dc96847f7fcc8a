package domain_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hattournament/src/core/domain"
)

func TestSubround_PlanGames(t *testing.T) {
	_, sub := fixture(t)

	games, err := sub.PlanGames(2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, games, 2)
	for _, g := range games {
		assert.Equal(t, sub.ID, g.SubroundID)
		assert.Len(t, g.Participants, 2)
		assert.Equal(t, domain.ZeroScores(g.Participants), g.Result)
		assert.False(t, g.Resolved)
	}
	assert.False(t, sub.IsSplit(), "planning alone does not split")
}

func TestSubround_SplitTwice(t *testing.T) {
	_, sub := fixture(t)
	games := split(t, sub, 2)
	ids := append([]int64(nil), sub.Games...)

	again, err := sub.PlanGames(2, rand.New(rand.NewSource(2)))
	require.Error(t, err)
	assert.True(t, domain.IsAlreadyExists(err))
	assert.Nil(t, again)
	assert.Equal(t, ids, sub.Games)
	assert.Len(t, games, 2)
}

func TestSubround_PlanGamesInvalidSize(t *testing.T) {
	_, sub := fixture(t)

	_, err := sub.PlanGames(3, rand.New(rand.NewSource(1)))
	assert.True(t, domain.IsInvalidGameSize(err))
	assert.False(t, sub.IsSplit())
}

func TestSubround_Membership(t *testing.T) {
	sub := &domain.Subround{ID: 1, RoundID: 1}

	require.NoError(t, sub.AddPair(5))
	assert.Equal(t, domain.Scores{5: 0}, sub.Scores)

	err := sub.AddPair(5)
	assert.True(t, domain.IsAlreadyExists(err))

	err = sub.RemovePair(6)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, sub.RemovePair(5))
	assert.Empty(t, sub.Pairs)
	assert.Empty(t, sub.Scores)
}

func TestSubround_MembershipFrozenWhileSplit(t *testing.T) {
	_, sub := fixture(t)
	split(t, sub, 2)

	err := sub.AddPair(9)
	assert.True(t, domain.IsConflict(err))

	err = sub.RemovePair(1)
	assert.True(t, domain.IsConflict(err))
	assert.True(t, sub.HasPair(1))
}

func TestSubround_LinkWords(t *testing.T) {
	sub := &domain.Subround{ID: 1}
	sub.LinkWords([]domain.Word{{ID: 3}, {ID: 8}})
	sub.LinkWords([]domain.Word{{ID: 1}})
	assert.Equal(t, []int64{3, 8, 1}, sub.Words)
}
