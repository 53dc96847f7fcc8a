package usecase_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"hattournament/src/core/domain"
)

const racers = 16

func TestConcurrentSubmit_OnlyOneWins(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 4)
	round, sub := e.roundWith(t, "final", pairs)
	games, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 2)
	require.NoError(t, err)
	g := games[0]

	var wins, dupes atomic.Int32
	var eg errgroup.Group
	for i := range racers {
		eg.Go(func() error {
			r := domain.Scores{g.Participants[0]: i, g.Participants[1]: 1}
			_, err := e.games.SubmitResult(e.ctx, e.userID, g.ID, r)
			switch {
			case err == nil:
				wins.Add(1)
			case domain.IsAlreadyExists(err):
				dupes.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(racers-1), dupes.Load())

	stored, err := e.games.GetResult(e.ctx, e.userID, g.ID)
	require.NoError(t, err)
	r := e.round(t, round.ID)
	for id, v := range stored {
		assert.Equal(t, v, r.Scores[id], "result applied exactly once")
	}
}

func TestConcurrentSplit_OnlyOneWins(t *testing.T) {
	e := setupEnv(t)
	_, sub := e.roundWith(t, "final", e.pairs(t, 8))

	var wins atomic.Int32
	var eg errgroup.Group
	for range racers {
		eg.Go(func() error {
			_, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 2)
			switch {
			case err == nil:
				wins.Add(1)
			case domain.IsAlreadyExists(err):
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, int32(1), wins.Load())

	games, err := e.subrounds.ListGames(e.ctx, e.userID, sub.ID)
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestConcurrentLinkWords_NoWordTwice(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 2)
	round, err := e.rounds.Create(e.ctx, e.userID, e.tournament.ID, "final")
	require.NoError(t, err)

	subs := make([]*domain.Subround, racers)
	for i := range subs {
		subs[i] = e.subroundWith(t, round.ID, fmt.Sprintf("s%d", i), pairs)
	}
	const words, take = 20, 3
	for i := range words {
		_, err := e.tournaments.AddWord(e.ctx, e.userID, e.tournament.ID, fmt.Sprintf("w%d", i), 1)
		require.NoError(t, err)
	}

	var wins atomic.Int32
	var eg errgroup.Group
	for _, sub := range subs {
		eg.Go(func() error {
			_, err := e.subrounds.LinkWords(e.ctx, e.userID, sub.ID, 1, take)
			switch {
			case err == nil:
				wins.Add(1)
			case domain.IsInsufficientWords(err):
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, int32(words/take), wins.Load())

	seen := map[int64]int64{}
	for _, sub := range subs {
		linked, err := e.subrounds.ListWords(e.ctx, e.userID, sub.ID)
		require.NoError(t, err)
		assert.Contains(t, []int{0, take}, len(linked))
		for _, w := range linked {
			prev, dup := seen[w.ID]
			assert.False(t, dup, "word %d linked to subrounds %d and %d", w.ID, prev, sub.ID)
			seen[w.ID] = sub.ID
		}
	}
	assert.Len(t, seen, (words/take)*take)
}

func TestConcurrentSubmits_AcrossGamesKeepAggregates(t *testing.T) {
	e := setupEnv(t)
	pairs := e.pairs(t, 12)
	round, sub := e.roundWith(t, "final", pairs)
	games, err := e.subrounds.Split(e.ctx, e.userID, sub.ID, 6)
	require.NoError(t, err)

	scores := map[int64]int{}
	for _, id := range pairs {
		scores[id] = int(id)
	}
	var eg errgroup.Group
	for _, g := range games {
		eg.Go(func() error {
			_, err := e.games.SubmitResult(e.ctx, e.userID, g.ID, resultFor(g, scores))
			return err
		})
	}
	require.NoError(t, eg.Wait())

	assert.Equal(t, domain.Scores(scores), e.round(t, round.ID).Scores)
	assert.Equal(t, domain.Scores(scores), e.subround(t, sub.ID).Scores)
}
