package memstore

import (
	"context"
	"slices"
	"time"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
)

var _ ports.Tx = (*memTx)(nil)

type memTx struct {
	st  *state
	now func() time.Time
}

// ---- Users & tokens ----

func (t *memTx) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	for _, u := range t.st.users {
		if u.Username == username {
			return nil, domain.NewAlreadyExistsError("user")
		}
	}
	t.st.seq.user++
	u := domain.User{ID: t.st.seq.user, Username: username, PasswordHash: passwordHash, CreatedAt: t.now()}
	t.st.users[u.ID] = u
	return &u, nil
}

func (t *memTx) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range t.st.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

func (t *memTx) CreateToken(ctx context.Context, token domain.Token) error {
	if _, ok := t.st.tokens[token.ID]; ok {
		return domain.NewAlreadyExistsError("token")
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = t.now()
	}
	t.st.tokens[token.ID] = token
	return nil
}

func (t *memTx) GetToken(ctx context.Context, tokenID string) (*domain.Token, error) {
	tok, ok := t.st.tokens[tokenID]
	if !ok {
		return nil, domain.NewNotFoundError("token")
	}
	return &tok, nil
}

func (t *memTx) DeleteToken(ctx context.Context, tokenID string) error {
	if _, ok := t.st.tokens[tokenID]; !ok {
		return domain.NewNotFoundError("token")
	}
	delete(t.st.tokens, tokenID)
	return nil
}

// ---- Tournaments ----

func (t *memTx) CreateTournament(ctx context.Context, ownerID int64, name string) (*domain.Tournament, error) {
	for _, tr := range t.st.tournaments {
		if tr.OwnerID == ownerID && tr.Name == name {
			return nil, domain.NewAlreadyExistsError("tournament")
		}
	}
	t.st.seq.tournament++
	tr := domain.Tournament{ID: t.st.seq.tournament, OwnerID: ownerID, Name: name, CreatedAt: t.now()}
	t.st.tournaments[tr.ID] = tr
	return &tr, nil
}

func (t *memTx) GetTournament(ctx context.Context, tournamentID int64) (*domain.Tournament, error) {
	tr, ok := t.st.tournaments[tournamentID]
	if !ok {
		return nil, domain.NewNotFoundError("tournament")
	}
	return &tr, nil
}

// LockTournament is GetTournament; the store lock already serializes units of work.
func (t *memTx) LockTournament(ctx context.Context, tournamentID int64) (*domain.Tournament, error) {
	return t.GetTournament(ctx, tournamentID)
}

func (t *memTx) ListTournaments(ctx context.Context, ownerID int64) ([]domain.Tournament, error) {
	return sortedValues(t.st.tournaments, func(tr domain.Tournament) bool {
		return tr.OwnerID == ownerID
	}), nil
}

// ---- Player pairs ----

func (t *memTx) CreatePair(ctx context.Context, tournamentID int64, first, second string) (*domain.PlayerPair, error) {
	if _, ok := t.st.tournaments[tournamentID]; !ok {
		return nil, domain.NewNotFoundError("tournament")
	}
	t.st.seq.pair++
	p := domain.PlayerPair{
		ID:           t.st.seq.pair,
		TournamentID: tournamentID,
		FirstPlayer:  first,
		SecondPlayer: second,
		CreatedAt:    t.now(),
	}
	t.st.pairs[p.ID] = p
	return &p, nil
}

func (t *memTx) GetPair(ctx context.Context, pairID int64) (*domain.PlayerPair, error) {
	p, ok := t.st.pairs[pairID]
	if !ok {
		return nil, domain.NewNotFoundError("pair")
	}
	return &p, nil
}

func (t *memTx) ListPairs(ctx context.Context, tournamentID int64) ([]domain.PlayerPair, error) {
	return sortedValues(t.st.pairs, func(p domain.PlayerPair) bool {
		return p.TournamentID == tournamentID
	}), nil
}

func (t *memTx) DeletePair(ctx context.Context, pairID int64) error {
	if _, ok := t.st.pairs[pairID]; !ok {
		return domain.NewNotFoundError("pair")
	}
	delete(t.st.pairs, pairID)
	for id, r := range t.st.rounds {
		if i := slices.Index(r.Pairs, pairID); i >= 0 {
			r.Pairs = slices.Delete(r.Pairs, i, i+1)
			delete(r.Scores, pairID)
			t.st.rounds[id] = r
		}
	}
	for id, sr := range t.st.subrounds {
		if i := slices.Index(sr.Pairs, pairID); i >= 0 {
			sr.Pairs = slices.Delete(sr.Pairs, i, i+1)
			delete(sr.Scores, pairID)
			t.st.subrounds[id] = sr
		}
	}
	return nil
}

func (t *memTx) PairHasGames(ctx context.Context, pairID int64) (bool, error) {
	for _, g := range t.st.games {
		if g.HasParticipant(pairID) {
			return true, nil
		}
	}
	return false, nil
}

// ---- Word bank ----

func (t *memTx) CreateWord(ctx context.Context, tournamentID int64, text string, difficulty int) (*domain.Word, error) {
	if _, ok := t.st.tournaments[tournamentID]; !ok {
		return nil, domain.NewNotFoundError("tournament")
	}
	for _, w := range t.st.words {
		if w.TournamentID == tournamentID && w.Text == text {
			return nil, domain.NewAlreadyExistsError("word")
		}
	}
	t.st.seq.word++
	w := domain.Word{ID: t.st.seq.word, TournamentID: tournamentID, Text: text, Difficulty: difficulty, CreatedAt: t.now()}
	t.st.words[w.ID] = w
	return &w, nil
}

func (t *memTx) GetWord(ctx context.Context, wordID int64) (*domain.Word, error) {
	w, ok := t.st.words[wordID]
	if !ok {
		return nil, domain.NewNotFoundError("word")
	}
	w = cloneWord(w)
	return &w, nil
}

func (t *memTx) ListWords(ctx context.Context, tournamentID int64) ([]domain.Word, error) {
	return t.words(func(w domain.Word) bool { return w.TournamentID == tournamentID }), nil
}

func (t *memTx) DeleteWord(ctx context.Context, wordID int64) error {
	w, ok := t.st.words[wordID]
	if !ok {
		return domain.NewNotFoundError("word")
	}
	delete(t.st.words, wordID)
	if w.SubroundID != nil {
		if sr, ok := t.st.subrounds[*w.SubroundID]; ok {
			sr.Words = slices.DeleteFunc(sr.Words, func(id int64) bool { return id == wordID })
			t.st.subrounds[sr.ID] = sr
		}
	}
	return nil
}

func (t *memTx) AvailableWords(ctx context.Context, tournamentID int64, difficulty int) ([]domain.Word, error) {
	return t.words(func(w domain.Word) bool {
		return w.TournamentID == tournamentID && w.Difficulty == difficulty && !w.Consumed
	}), nil
}

func (t *memTx) ConsumeWords(ctx context.Context, subroundID int64, wordIDs []int64) error {
	sr, ok := t.st.subrounds[subroundID]
	if !ok {
		return domain.NewNotFoundError("subround")
	}
	for _, id := range wordIDs {
		w, ok := t.st.words[id]
		if !ok {
			return domain.NewNotFoundError("word")
		}
		if w.Consumed {
			return domain.NewConflictError("word already consumed")
		}
		sid := subroundID
		w.Consumed = true
		w.SubroundID = &sid
		t.st.words[id] = w
		sr.Words = append(sr.Words, id)
	}
	t.st.subrounds[subroundID] = sr
	return nil
}

func (t *memTx) ListSubroundWords(ctx context.Context, subroundID int64) ([]domain.Word, error) {
	return t.words(func(w domain.Word) bool {
		return w.SubroundID != nil && *w.SubroundID == subroundID
	}), nil
}

func (t *memTx) words(keep func(domain.Word) bool) []domain.Word {
	out := sortedValues(t.st.words, keep)
	for i := range out {
		out[i] = cloneWord(out[i])
	}
	return out
}

// ---- Rounds ----

func (t *memTx) CreateRound(ctx context.Context, tournamentID int64, name string) (*domain.Round, error) {
	if _, ok := t.st.tournaments[tournamentID]; !ok {
		return nil, domain.NewNotFoundError("tournament")
	}
	for _, r := range t.st.rounds {
		if r.TournamentID == tournamentID && r.Name == name {
			return nil, domain.NewAlreadyExistsError("round")
		}
	}
	t.st.seq.round++
	r := domain.Round{ID: t.st.seq.round, TournamentID: tournamentID, Name: name, Scores: domain.Scores{}, CreatedAt: t.now()}
	t.st.rounds[r.ID] = r
	out := r.Clone()
	return &out, nil
}

func (t *memTx) GetRound(ctx context.Context, roundID int64) (*domain.Round, error) {
	r, ok := t.st.rounds[roundID]
	if !ok {
		return nil, domain.NewNotFoundError("round")
	}
	out := r.Clone()
	return &out, nil
}

// LockRound is GetRound; the store lock already serializes units of work.
func (t *memTx) LockRound(ctx context.Context, roundID int64) (*domain.Round, error) {
	return t.GetRound(ctx, roundID)
}

func (t *memTx) ListRounds(ctx context.Context, tournamentID int64) ([]domain.Round, error) {
	out := sortedValues(t.st.rounds, func(r domain.Round) bool { return r.TournamentID == tournamentID })
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out, nil
}

func (t *memTx) SaveRound(ctx context.Context, round *domain.Round) error {
	r, ok := t.st.rounds[round.ID]
	if !ok {
		return domain.NewNotFoundError("round")
	}
	saved := round.Clone()
	r.Pairs = saved.Pairs
	r.Scores = saved.Scores
	t.st.rounds[r.ID] = r
	return nil
}

func (t *memTx) DeleteRound(ctx context.Context, roundID int64) error {
	if _, ok := t.st.rounds[roundID]; !ok {
		return domain.NewNotFoundError("round")
	}
	for id, sr := range t.st.subrounds {
		if sr.RoundID == roundID {
			t.deleteSubround(id)
		}
	}
	delete(t.st.rounds, roundID)
	return nil
}

// ---- Subrounds ----

func (t *memTx) CreateSubround(ctx context.Context, roundID int64, name string) (*domain.Subround, error) {
	if _, ok := t.st.rounds[roundID]; !ok {
		return nil, domain.NewNotFoundError("round")
	}
	for _, sr := range t.st.subrounds {
		if sr.RoundID == roundID && sr.Name == name {
			return nil, domain.NewAlreadyExistsError("subround")
		}
	}
	t.st.seq.subround++
	sr := domain.Subround{ID: t.st.seq.subround, RoundID: roundID, Name: name, Scores: domain.Scores{}, CreatedAt: t.now()}
	t.st.subrounds[sr.ID] = sr
	out := sr.Clone()
	return &out, nil
}

func (t *memTx) GetSubround(ctx context.Context, subroundID int64) (*domain.Subround, error) {
	sr, ok := t.st.subrounds[subroundID]
	if !ok {
		return nil, domain.NewNotFoundError("subround")
	}
	out := sr.Clone()
	return &out, nil
}

func (t *memTx) ListSubrounds(ctx context.Context, roundID int64) ([]domain.Subround, error) {
	out := sortedValues(t.st.subrounds, func(sr domain.Subround) bool { return sr.RoundID == roundID })
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out, nil
}

func (t *memTx) SaveSubround(ctx context.Context, sub *domain.Subround) error {
	sr, ok := t.st.subrounds[sub.ID]
	if !ok {
		return domain.NewNotFoundError("subround")
	}
	saved := sub.Clone()
	sr.Pairs = saved.Pairs
	sr.Scores = saved.Scores
	t.st.subrounds[sr.ID] = sr
	return nil
}

func (t *memTx) DeleteSubround(ctx context.Context, subroundID int64) error {
	if _, ok := t.st.subrounds[subroundID]; !ok {
		return domain.NewNotFoundError("subround")
	}
	t.deleteSubround(subroundID)
	return nil
}

// deleteSubround drops the subround and its games. Its words stay consumed.
func (t *memTx) deleteSubround(subroundID int64) {
	for id, g := range t.st.games {
		if g.SubroundID == subroundID {
			delete(t.st.games, id)
		}
	}
	for id, w := range t.st.words {
		if w.SubroundID != nil && *w.SubroundID == subroundID {
			w.SubroundID = nil
			t.st.words[id] = w
		}
	}
	delete(t.st.subrounds, subroundID)
}

// ---- Games ----

func (t *memTx) CreateGames(ctx context.Context, games []domain.Game) ([]domain.Game, error) {
	out := make([]domain.Game, 0, len(games))
	for _, g := range games {
		sr, ok := t.st.subrounds[g.SubroundID]
		if !ok {
			return nil, domain.NewNotFoundError("subround")
		}
		t.st.seq.game++
		g = g.Clone()
		g.ID = t.st.seq.game
		g.CreatedAt = t.now()
		t.st.games[g.ID] = g
		sr.Games = append(sr.Games, g.ID)
		t.st.subrounds[sr.ID] = sr
		out = append(out, g.Clone())
	}
	return out, nil
}

func (t *memTx) GetGame(ctx context.Context, gameID int64) (*domain.Game, error) {
	g, ok := t.st.games[gameID]
	if !ok {
		return nil, domain.NewNotFoundError("game")
	}
	out := g.Clone()
	return &out, nil
}

func (t *memTx) ListGames(ctx context.Context, subroundID int64) ([]domain.Game, error) {
	out := sortedValues(t.st.games, func(g domain.Game) bool { return g.SubroundID == subroundID })
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out, nil
}

func (t *memTx) SaveGame(ctx context.Context, game *domain.Game) error {
	g, ok := t.st.games[game.ID]
	if !ok {
		return domain.NewNotFoundError("game")
	}
	g.Resolved = game.Resolved
	g.Result = game.Result.Clone()
	t.st.games[g.ID] = g
	return nil
}

func (t *memTx) DeleteGames(ctx context.Context, subroundID int64) error {
	sr, ok := t.st.subrounds[subroundID]
	if !ok {
		return domain.NewNotFoundError("subround")
	}
	for id, g := range t.st.games {
		if g.SubroundID == subroundID {
			delete(t.st.games, id)
		}
	}
	sr.Games = nil
	t.st.subrounds[subroundID] = sr
	return nil
}

// ---- Admin ----

func (t *memTx) Reset(ctx context.Context) error {
	*t.st = *newState()
	return nil
}
