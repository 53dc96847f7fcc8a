package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
	"hattournament/src/infra/db"
)

var _ ports.Store = (*PostgresRepository)(nil)

// PostgresRepository implements ports.Store using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Atomic runs fn inside a transaction and commits when fn returns nil.
func (r *PostgresRepository) Atomic(ctx context.Context, fn func(tx ports.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		r.log.Error("commit failed", "error", err)
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type pgTx struct {
	tx pgx.Tx
}

var _ ports.Tx = (*pgTx)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// notFound maps pgx.ErrNoRows to a NotFound domain error.
func notFound(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFoundError(resource)
	}
	return err
}

// expectOne turns a zero-row command into a NotFound domain error.
func expectOne(tag pgconn.CommandTag, err error, resource string) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(resource)
	}
	return nil
}

// Users & tokens

func (t *pgTx) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	const q = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`
	var u domain.User
	err := t.tx.QueryRow(ctx, q, username, passwordHash).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewAlreadyExistsError("user")
		}
		return nil, err
	}
	return &u, nil
}

func (t *pgTx) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	var u domain.User
	if err := t.tx.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (t *pgTx) CreateToken(ctx context.Context, token domain.Token) error {
	const q = `
		INSERT INTO tokens (id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := t.tx.Exec(ctx, q, token.ID, token.UserID, token.ExpiresAt); err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyExistsError("token")
		}
		return err
	}
	return nil
}

func (t *pgTx) GetToken(ctx context.Context, tokenID string) (*domain.Token, error) {
	const q = `
		SELECT id, user_id, expires_at, created_at
		FROM tokens
		WHERE id = $1
	`
	var tok domain.Token
	if err := t.tx.QueryRow(ctx, q, tokenID).Scan(&tok.ID, &tok.UserID, &tok.ExpiresAt, &tok.CreatedAt); err != nil {
		return nil, notFound(err, "token")
	}
	return &tok, nil
}

func (t *pgTx) DeleteToken(ctx context.Context, tokenID string) error {
	const q = `DELETE FROM tokens WHERE id = $1`
	tag, err := t.tx.Exec(ctx, q, tokenID)
	return expectOne(tag, err, "token")
}

// Tournaments

const tournamentColumns = `id, owner_id, name, created_at`

func scanTournament(row pgx.Row) (*domain.Tournament, error) {
	var tr domain.Tournament
	if err := row.Scan(&tr.ID, &tr.OwnerID, &tr.Name, &tr.CreatedAt); err != nil {
		return nil, err
	}
	return &tr, nil
}

func (t *pgTx) CreateTournament(ctx context.Context, ownerID int64, name string) (*domain.Tournament, error) {
	const q = `
		INSERT INTO tournaments (owner_id, name)
		VALUES ($1, $2)
		RETURNING ` + tournamentColumns
	tr, err := scanTournament(t.tx.QueryRow(ctx, q, ownerID, name))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewAlreadyExistsError("tournament")
		}
		return nil, err
	}
	return tr, nil
}

func (t *pgTx) GetTournament(ctx context.Context, tournamentID int64) (*domain.Tournament, error) {
	const q = `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	tr, err := scanTournament(t.tx.QueryRow(ctx, q, tournamentID))
	if err != nil {
		return nil, notFound(err, "tournament")
	}
	return tr, nil
}

func (t *pgTx) LockTournament(ctx context.Context, tournamentID int64) (*domain.Tournament, error) {
	const q = `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1 FOR UPDATE`
	tr, err := scanTournament(t.tx.QueryRow(ctx, q, tournamentID))
	if err != nil {
		return nil, notFound(err, "tournament")
	}
	return tr, nil
}

func (t *pgTx) ListTournaments(ctx context.Context, ownerID int64) ([]domain.Tournament, error) {
	const q = `SELECT ` + tournamentColumns + ` FROM tournaments WHERE owner_id = $1 ORDER BY id`
	rows, err := t.tx.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Tournament, error) {
		tr, err := scanTournament(row)
		if err != nil {
			return domain.Tournament{}, err
		}
		return *tr, nil
	})
}

// Player pairs

const pairColumns = `id, tournament_id, first_player, second_player, created_at`

func scanPair(row pgx.Row) (*domain.PlayerPair, error) {
	var p domain.PlayerPair
	if err := row.Scan(&p.ID, &p.TournamentID, &p.FirstPlayer, &p.SecondPlayer, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *pgTx) CreatePair(ctx context.Context, tournamentID int64, first, second string) (*domain.PlayerPair, error) {
	const q = `
		INSERT INTO player_pairs (tournament_id, first_player, second_player)
		VALUES ($1, $2, $3)
		RETURNING ` + pairColumns
	p, err := scanPair(t.tx.QueryRow(ctx, q, tournamentID, first, second))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFoundError("tournament")
		}
		return nil, err
	}
	return p, nil
}

func (t *pgTx) GetPair(ctx context.Context, pairID int64) (*domain.PlayerPair, error) {
	const q = `SELECT ` + pairColumns + ` FROM player_pairs WHERE id = $1`
	p, err := scanPair(t.tx.QueryRow(ctx, q, pairID))
	if err != nil {
		return nil, notFound(err, "pair")
	}
	return p, nil
}

func (t *pgTx) ListPairs(ctx context.Context, tournamentID int64) ([]domain.PlayerPair, error) {
	const q = `SELECT ` + pairColumns + ` FROM player_pairs WHERE tournament_id = $1 ORDER BY id`
	rows, err := t.tx.Query(ctx, q, tournamentID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PlayerPair, error) {
		p, err := scanPair(row)
		if err != nil {
			return domain.PlayerPair{}, err
		}
		return *p, nil
	})
}

func (t *pgTx) DeletePair(ctx context.Context, pairID int64) error {
	const q = `DELETE FROM player_pairs WHERE id = $1`
	tag, err := t.tx.Exec(ctx, q, pairID)
	if isForeignKeyViolation(err) {
		return domain.NewConflictError("pair plays in a game")
	}
	return expectOne(tag, err, "pair")
}

func (t *pgTx) PairHasGames(ctx context.Context, pairID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM game_pairs WHERE pair_id = $1)`
	var exists bool
	err := t.tx.QueryRow(ctx, q, pairID).Scan(&exists)
	return exists, err
}

// Admin utilities

func (t *pgTx) Reset(ctx context.Context) error {
	const q = `
		TRUNCATE game_pairs, games, words, subround_pairs, subrounds, round_pairs, rounds,
			player_pairs, tournaments, tokens, users
		RESTART IDENTITY CASCADE
	`
	_, err := t.tx.Exec(ctx, q)
	return err
}
