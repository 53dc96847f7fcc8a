// Package memstore is an in-memory implementation of ports.Store. Each unit
// of work runs on a private copy of the data under a store-wide lock and
// replaces the live data only when it succeeds.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
)

var _ ports.Store = (*Store)(nil)

// Store keeps all data in process memory.
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{state: newState(), now: time.Now}
}

// Health always succeeds.
func (s *Store) Health(ctx context.Context) error {
	return ctx.Err()
}

// Atomic runs fn on a copy of the data and keeps the copy if fn succeeds.
func (s *Store) Atomic(ctx context.Context, fn func(tx ports.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&memTx{st: work, now: s.now}); err != nil {
		return err
	}
	s.state = work
	return nil
}

type sequences struct {
	user, tournament, pair, word, round, subround, game int64
}

type state struct {
	seq         sequences
	users       map[int64]domain.User
	tokens      map[string]domain.Token
	tournaments map[int64]domain.Tournament
	pairs       map[int64]domain.PlayerPair
	words       map[int64]domain.Word
	rounds      map[int64]domain.Round
	subrounds   map[int64]domain.Subround
	games       map[int64]domain.Game
}

func newState() *state {
	return &state{
		users:       map[int64]domain.User{},
		tokens:      map[string]domain.Token{},
		tournaments: map[int64]domain.Tournament{},
		pairs:       map[int64]domain.PlayerPair{},
		words:       map[int64]domain.Word{},
		rounds:      map[int64]domain.Round{},
		subrounds:   map[int64]domain.Subround{},
		games:       map[int64]domain.Game{},
	}
}

func (st *state) clone() *state {
	out := &state{
		seq:         st.seq,
		users:       maps.Clone(st.users),
		tokens:      maps.Clone(st.tokens),
		tournaments: maps.Clone(st.tournaments),
		pairs:       maps.Clone(st.pairs),
		words:       make(map[int64]domain.Word, len(st.words)),
		rounds:      make(map[int64]domain.Round, len(st.rounds)),
		subrounds:   make(map[int64]domain.Subround, len(st.subrounds)),
		games:       make(map[int64]domain.Game, len(st.games)),
	}
	for id, w := range st.words {
		out.words[id] = cloneWord(w)
	}
	for id, r := range st.rounds {
		out.rounds[id] = r.Clone()
	}
	for id, sr := range st.subrounds {
		out.subrounds[id] = sr.Clone()
	}
	for id, g := range st.games {
		out.games[id] = g.Clone()
	}
	return out
}

func cloneWord(w domain.Word) domain.Word {
	if w.SubroundID != nil {
		id := *w.SubroundID
		w.SubroundID = &id
	}
	return w
}

// sortedValues returns the values of m that pass keep, ordered by id.
func sortedValues[V any](m map[int64]V, keep func(V) bool) []V {
	ids := slices.Sorted(maps.Keys(m))
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		if v := m[id]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}
