package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hattournament/src/core/domain"
)

func TestRound_AddPair(t *testing.T) {
	r := &domain.Round{ID: 1}
	require.NoError(t, r.AddPair(1))
	require.NoError(t, r.AddPair(2))

	err := r.AddPair(1)
	assert.True(t, domain.IsAlreadyExists(err))
	assert.Equal(t, []int64{1, 2}, r.Pairs)
	assert.Equal(t, domain.Scores{1: 0, 2: 0}, r.Scores)
}

func TestRound_TopN(t *testing.T) {
	r := &domain.Round{ID: 1}
	for _, id := range []int64{4, 2, 9, 7} {
		require.NoError(t, r.AddPair(id))
	}
	r.Scores.Add(domain.Scores{4: 3, 2: 8, 9: 8, 7: 1})

	tests := []struct {
		name string
		n    int
		want []int64
	}{
		{"best", 1, []int64{2}},
		{"tie keeps join order", 2, []int64{2, 9}},
		{"all", 4, []int64{2, 9, 4, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.TopN(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, n := range []int{0, -1, 5} {
		_, err := r.TopN(n)
		assert.True(t, domain.IsValidationError(err), "n=%d", n)
	}
}

func TestRound_Standings(t *testing.T) {
	r := &domain.Round{ID: 1}
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, r.AddPair(id))
	}
	r.Scores.Add(domain.Scores{3: 5})

	want := []domain.Standing{{PairID: 3, Score: 5}, {PairID: 1}, {PairID: 2}}
	if diff := cmp.Diff(want, r.Standings()); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestRound_RemovePairCascades(t *testing.T) {
	r := &domain.Round{ID: 1}
	require.NoError(t, r.AddPair(1))
	require.NoError(t, r.AddPair(2))

	subs := []domain.Subround{
		{ID: 10, RoundID: 1},
		{ID: 11, RoundID: 1},
	}
	require.NoError(t, subs[0].AddPair(1))
	require.NoError(t, subs[0].AddPair(2))
	require.NoError(t, subs[1].AddPair(2))

	touched, err := r.RemovePair(1, subs)
	require.NoError(t, err)
	require.Len(t, touched, 1)
	assert.Equal(t, int64(10), touched[0].ID)
	assert.Equal(t, []int64{2}, subs[0].Pairs)
	assert.Equal(t, []int64{2}, r.Pairs)
	assert.NotContains(t, r.Scores, int64(1))

	_, err = r.RemovePair(1, subs)
	assert.True(t, domain.IsNotFound(err))
}

func TestRound_RemovePairBlockedBySplitSubround(t *testing.T) {
	r, sub := fixture(t)
	split(t, sub, 2)
	subs := []domain.Subround{*sub}

	_, err := r.RemovePair(1, subs)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.True(t, r.HasPair(1))
	assert.True(t, subs[0].HasPair(1))
}
