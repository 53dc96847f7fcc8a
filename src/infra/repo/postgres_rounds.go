package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hattournament/src/core/domain"
)

// Word bank

const wordColumns = `id, tournament_id, text, difficulty, consumed, subround_id, created_at`

func scanWord(row pgx.Row) (*domain.Word, error) {
	var w domain.Word
	if err := row.Scan(&w.ID, &w.TournamentID, &w.Text, &w.Difficulty, &w.Consumed, &w.SubroundID, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func collectWords(rows pgx.Rows, err error) ([]domain.Word, error) {
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Word, error) {
		w, err := scanWord(row)
		if err != nil {
			return domain.Word{}, err
		}
		return *w, nil
	})
}

func (t *pgTx) CreateWord(ctx context.Context, tournamentID int64, text string, difficulty int) (*domain.Word, error) {
	const q = `
		INSERT INTO words (tournament_id, text, difficulty)
		VALUES ($1, $2, $3)
		RETURNING ` + wordColumns
	w, err := scanWord(t.tx.QueryRow(ctx, q, tournamentID, text, difficulty))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, domain.NewAlreadyExistsError("word")
		case isForeignKeyViolation(err):
			return nil, domain.NewNotFoundError("tournament")
		}
		return nil, err
	}
	return w, nil
}

func (t *pgTx) GetWord(ctx context.Context, wordID int64) (*domain.Word, error) {
	const q = `SELECT ` + wordColumns + ` FROM words WHERE id = $1`
	w, err := scanWord(t.tx.QueryRow(ctx, q, wordID))
	if err != nil {
		return nil, notFound(err, "word")
	}
	return w, nil
}

func (t *pgTx) ListWords(ctx context.Context, tournamentID int64) ([]domain.Word, error) {
	const q = `SELECT ` + wordColumns + ` FROM words WHERE tournament_id = $1 ORDER BY id`
	return collectWords(t.tx.Query(ctx, q, tournamentID))
}

func (t *pgTx) DeleteWord(ctx context.Context, wordID int64) error {
	const q = `DELETE FROM words WHERE id = $1`
	tag, err := t.tx.Exec(ctx, q, wordID)
	return expectOne(tag, err, "word")
}

func (t *pgTx) AvailableWords(ctx context.Context, tournamentID int64, difficulty int) ([]domain.Word, error) {
	const q = `
		SELECT ` + wordColumns + `
		FROM words
		WHERE tournament_id = $1 AND difficulty = $2 AND NOT consumed
		ORDER BY id
		FOR UPDATE
	`
	return collectWords(t.tx.Query(ctx, q, tournamentID, difficulty))
}

func (t *pgTx) ConsumeWords(ctx context.Context, subroundID int64, wordIDs []int64) error {
	const q = `
		UPDATE words
		SET consumed = true, subround_id = $1
		WHERE id = ANY($2) AND NOT consumed
	`
	tag, err := t.tx.Exec(ctx, q, subroundID, wordIDs)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewNotFoundError("subround")
		}
		return err
	}
	if int(tag.RowsAffected()) != len(wordIDs) {
		return domain.NewConflictError("word already consumed")
	}
	return nil
}

func (t *pgTx) ListSubroundWords(ctx context.Context, subroundID int64) ([]domain.Word, error) {
	const q = `SELECT ` + wordColumns + ` FROM words WHERE subround_id = $1 ORDER BY id`
	return collectWords(t.tx.Query(ctx, q, subroundID))
}

// Rounds

// loadMembers reads an ordered membership table into pair order and scores.
func (t *pgTx) loadMembers(ctx context.Context, q string, id int64) ([]int64, domain.Scores, error) {
	rows, err := t.tx.Query(ctx, q, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	pairs := []int64{}
	scores := domain.Scores{}
	for rows.Next() {
		var pairID int64
		var score int
		if err := rows.Scan(&pairID, &score); err != nil {
			return nil, nil, err
		}
		pairs = append(pairs, pairID)
		scores[pairID] = score
	}
	return pairs, scores, rows.Err()
}

// saveMembers replaces an ordered membership table for one owner row.
func (t *pgTx) saveMembers(ctx context.Context, table, ownerColumn string, id int64, pairs []int64, scores domain.Scores) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM `+table+` WHERE `+ownerColumn+` = $1`, id); err != nil {
		return err
	}
	if len(pairs) == 0 {
		return nil
	}
	_, err := t.tx.CopyFrom(ctx,
		pgx.Identifier{table},
		[]string{ownerColumn, "pair_id", "position", "score"},
		pgx.CopyFromSlice(len(pairs), func(i int) ([]any, error) {
			return []any{id, pairs[i], i, scores[pairs[i]]}, nil
		}),
	)
	return err
}

func (t *pgTx) fillRound(ctx context.Context, r *domain.Round) error {
	const q = `SELECT pair_id, score FROM round_pairs WHERE round_id = $1 ORDER BY position`
	pairs, scores, err := t.loadMembers(ctx, q, r.ID)
	if err != nil {
		return err
	}
	r.Pairs, r.Scores = pairs, scores
	return nil
}

const roundColumns = `id, tournament_id, name, created_at`

func (t *pgTx) readRound(ctx context.Context, q string, roundID int64) (*domain.Round, error) {
	var r domain.Round
	if err := t.tx.QueryRow(ctx, q, roundID).Scan(&r.ID, &r.TournamentID, &r.Name, &r.CreatedAt); err != nil {
		return nil, notFound(err, "round")
	}
	if err := t.fillRound(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (t *pgTx) CreateRound(ctx context.Context, tournamentID int64, name string) (*domain.Round, error) {
	const q = `
		INSERT INTO rounds (tournament_id, name)
		VALUES ($1, $2)
		RETURNING ` + roundColumns
	r := domain.Round{Pairs: []int64{}, Scores: domain.Scores{}}
	if err := t.tx.QueryRow(ctx, q, tournamentID, name).Scan(&r.ID, &r.TournamentID, &r.Name, &r.CreatedAt); err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, domain.NewAlreadyExistsError("round")
		case isForeignKeyViolation(err):
			return nil, domain.NewNotFoundError("tournament")
		}
		return nil, err
	}
	return &r, nil
}

func (t *pgTx) GetRound(ctx context.Context, roundID int64) (*domain.Round, error) {
	return t.readRound(ctx, `SELECT `+roundColumns+` FROM rounds WHERE id = $1`, roundID)
}

func (t *pgTx) LockRound(ctx context.Context, roundID int64) (*domain.Round, error) {
	return t.readRound(ctx, `SELECT `+roundColumns+` FROM rounds WHERE id = $1 FOR UPDATE`, roundID)
}

func (t *pgTx) ListRounds(ctx context.Context, tournamentID int64) ([]domain.Round, error) {
	const q = `SELECT ` + roundColumns + ` FROM rounds WHERE tournament_id = $1 ORDER BY id`
	rows, err := t.tx.Query(ctx, q, tournamentID)
	if err != nil {
		return nil, err
	}
	rounds, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Round, error) {
		var r domain.Round
		err := row.Scan(&r.ID, &r.TournamentID, &r.Name, &r.CreatedAt)
		return r, err
	})
	if err != nil {
		return nil, err
	}
	for i := range rounds {
		if err := t.fillRound(ctx, &rounds[i]); err != nil {
			return nil, err
		}
	}
	return rounds, nil
}

func (t *pgTx) SaveRound(ctx context.Context, round *domain.Round) error {
	return t.saveMembers(ctx, "round_pairs", "round_id", round.ID, round.Pairs, round.Scores)
}

func (t *pgTx) DeleteRound(ctx context.Context, roundID int64) error {
	const q = `DELETE FROM rounds WHERE id = $1`
	tag, err := t.tx.Exec(ctx, q, roundID)
	return expectOne(tag, err, "round")
}

// Subrounds

const subroundColumns = `id, round_id, name, created_at`

func (t *pgTx) fillSubround(ctx context.Context, s *domain.Subround) error {
	const membersQ = `SELECT pair_id, score FROM subround_pairs WHERE subround_id = $1 ORDER BY position`
	pairs, scores, err := t.loadMembers(ctx, membersQ, s.ID)
	if err != nil {
		return err
	}
	s.Pairs, s.Scores = pairs, scores

	if s.Words, err = t.ids(ctx, `SELECT id FROM words WHERE subround_id = $1 ORDER BY id`, s.ID); err != nil {
		return err
	}
	s.Games, err = t.ids(ctx, `SELECT id FROM games WHERE subround_id = $1 ORDER BY id`, s.ID)
	return err
}

func (t *pgTx) ids(ctx context.Context, q string, id int64) ([]int64, error) {
	rows, err := t.tx.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (t *pgTx) CreateSubround(ctx context.Context, roundID int64, name string) (*domain.Subround, error) {
	const q = `
		INSERT INTO subrounds (round_id, name)
		VALUES ($1, $2)
		RETURNING ` + subroundColumns
	s := domain.Subround{Pairs: []int64{}, Words: []int64{}, Games: []int64{}, Scores: domain.Scores{}}
	if err := t.tx.QueryRow(ctx, q, roundID, name).Scan(&s.ID, &s.RoundID, &s.Name, &s.CreatedAt); err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, domain.NewAlreadyExistsError("subround")
		case isForeignKeyViolation(err):
			return nil, domain.NewNotFoundError("round")
		}
		return nil, err
	}
	return &s, nil
}

func (t *pgTx) GetSubround(ctx context.Context, subroundID int64) (*domain.Subround, error) {
	const q = `SELECT ` + subroundColumns + ` FROM subrounds WHERE id = $1`
	var s domain.Subround
	if err := t.tx.QueryRow(ctx, q, subroundID).Scan(&s.ID, &s.RoundID, &s.Name, &s.CreatedAt); err != nil {
		return nil, notFound(err, "subround")
	}
	if err := t.fillSubround(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (t *pgTx) ListSubrounds(ctx context.Context, roundID int64) ([]domain.Subround, error) {
	const q = `SELECT ` + subroundColumns + ` FROM subrounds WHERE round_id = $1 ORDER BY id`
	rows, err := t.tx.Query(ctx, q, roundID)
	if err != nil {
		return nil, err
	}
	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Subround, error) {
		var s domain.Subround
		err := row.Scan(&s.ID, &s.RoundID, &s.Name, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if err := t.fillSubround(ctx, &subs[i]); err != nil {
			return nil, err
		}
	}
	return subs, nil
}

func (t *pgTx) SaveSubround(ctx context.Context, sub *domain.Subround) error {
	return t.saveMembers(ctx, "subround_pairs", "subround_id", sub.ID, sub.Pairs, sub.Scores)
}

// DeleteSubround removes the subround; games and memberships cascade and its
// words keep their consumed flag.
func (t *pgTx) DeleteSubround(ctx context.Context, subroundID int64) error {
	const q = `DELETE FROM subrounds WHERE id = $1`
	tag, err := t.tx.Exec(ctx, q, subroundID)
	return expectOne(tag, err, "subround")
}

// Games

const gameColumns = `id, subround_id, resolved, created_at`

func (t *pgTx) fillGame(ctx context.Context, g *domain.Game) error {
	const q = `SELECT pair_id, score FROM game_pairs WHERE game_id = $1 ORDER BY position`
	pairs, scores, err := t.loadMembers(ctx, q, g.ID)
	if err != nil {
		return err
	}
	g.Participants, g.Result = pairs, scores
	return nil
}

func (t *pgTx) CreateGames(ctx context.Context, games []domain.Game) ([]domain.Game, error) {
	const q = `
		INSERT INTO games (subround_id)
		VALUES ($1)
		RETURNING id, created_at
	`
	out := make([]domain.Game, 0, len(games))
	for _, g := range games {
		g = g.Clone()
		if err := t.tx.QueryRow(ctx, q, g.SubroundID).Scan(&g.ID, &g.CreatedAt); err != nil {
			if isForeignKeyViolation(err) {
				return nil, domain.NewNotFoundError("subround")
			}
			return nil, err
		}
		if g.Result == nil {
			g.Result = domain.ZeroScores(g.Participants)
		}
		if err := t.saveMembers(ctx, "game_pairs", "game_id", g.ID, g.Participants, g.Result); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (t *pgTx) GetGame(ctx context.Context, gameID int64) (*domain.Game, error) {
	const q = `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	var g domain.Game
	if err := t.tx.QueryRow(ctx, q, gameID).Scan(&g.ID, &g.SubroundID, &g.Resolved, &g.CreatedAt); err != nil {
		return nil, notFound(err, "game")
	}
	if err := t.fillGame(ctx, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (t *pgTx) ListGames(ctx context.Context, subroundID int64) ([]domain.Game, error) {
	const q = `SELECT ` + gameColumns + ` FROM games WHERE subround_id = $1 ORDER BY id`
	rows, err := t.tx.Query(ctx, q, subroundID)
	if err != nil {
		return nil, err
	}
	games, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Game, error) {
		var g domain.Game
		err := row.Scan(&g.ID, &g.SubroundID, &g.Resolved, &g.CreatedAt)
		return g, err
	})
	if err != nil {
		return nil, err
	}
	for i := range games {
		if err := t.fillGame(ctx, &games[i]); err != nil {
			return nil, err
		}
	}
	return games, nil
}

func (t *pgTx) SaveGame(ctx context.Context, game *domain.Game) error {
	const q = `UPDATE games SET resolved = $2 WHERE id = $1`
	tag, err := t.tx.Exec(ctx, q, game.ID, game.Resolved)
	if err := expectOne(tag, err, "game"); err != nil {
		return err
	}

	const scoreQ = `UPDATE game_pairs SET score = $3 WHERE game_id = $1 AND pair_id = $2`
	batch := &pgx.Batch{}
	for _, pairID := range game.Participants {
		batch.Queue(scoreQ, game.ID, pairID, game.Result[pairID])
	}
	return t.tx.SendBatch(ctx, batch).Close()
}

func (t *pgTx) DeleteGames(ctx context.Context, subroundID int64) error {
	const q = `DELETE FROM games WHERE subround_id = $1`
	_, err := t.tx.Exec(ctx, q, subroundID)
	return err
}
