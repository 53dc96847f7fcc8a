// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo and src/infra/memstore. This ensures the core has no
// dependency on infrastructure.
package ports

import (
	"context"

	"hattournament/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// Store persists tournaments and everything below them.
type Store interface {
	Repository

	// Atomic runs fn as one unit of work. Changes made through tx become
	// visible to other callers only if fn returns nil; otherwise they are
	// discarded and fn's error is returned.
	Atomic(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of operations available inside Store.Atomic.
//
// Getters return NotFound domain errors for missing rows. Lock* variants
// additionally hold the row until the unit of work ends; every mutation of a
// round, its subrounds or their games locks the round first.
type Tx interface {
	// Users & tokens
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateToken(ctx context.Context, token domain.Token) error
	GetToken(ctx context.Context, tokenID string) (*domain.Token, error)
	DeleteToken(ctx context.Context, tokenID string) error

	// Tournaments
	CreateTournament(ctx context.Context, ownerID int64, name string) (*domain.Tournament, error)
	GetTournament(ctx context.Context, tournamentID int64) (*domain.Tournament, error)
	LockTournament(ctx context.Context, tournamentID int64) (*domain.Tournament, error)
	ListTournaments(ctx context.Context, ownerID int64) ([]domain.Tournament, error)

	// Player pairs
	CreatePair(ctx context.Context, tournamentID int64, first, second string) (*domain.PlayerPair, error)
	GetPair(ctx context.Context, pairID int64) (*domain.PlayerPair, error)
	ListPairs(ctx context.Context, tournamentID int64) ([]domain.PlayerPair, error)
	// DeletePair removes the pair and its round and subround memberships.
	DeletePair(ctx context.Context, pairID int64) error
	PairHasGames(ctx context.Context, pairID int64) (bool, error)

	// Word bank
	CreateWord(ctx context.Context, tournamentID int64, text string, difficulty int) (*domain.Word, error)
	GetWord(ctx context.Context, wordID int64) (*domain.Word, error)
	ListWords(ctx context.Context, tournamentID int64) ([]domain.Word, error)
	DeleteWord(ctx context.Context, wordID int64) error
	// AvailableWords returns the unconsumed words of one difficulty and
	// locks them against concurrent takers.
	AvailableWords(ctx context.Context, tournamentID int64, difficulty int) ([]domain.Word, error)
	ConsumeWords(ctx context.Context, subroundID int64, wordIDs []int64) error
	ListSubroundWords(ctx context.Context, subroundID int64) ([]domain.Word, error)

	// Rounds
	CreateRound(ctx context.Context, tournamentID int64, name string) (*domain.Round, error)
	GetRound(ctx context.Context, roundID int64) (*domain.Round, error)
	LockRound(ctx context.Context, roundID int64) (*domain.Round, error)
	ListRounds(ctx context.Context, tournamentID int64) ([]domain.Round, error)
	// SaveRound writes the round's membership and aggregate.
	SaveRound(ctx context.Context, round *domain.Round) error
	DeleteRound(ctx context.Context, roundID int64) error

	// Subrounds
	CreateSubround(ctx context.Context, roundID int64, name string) (*domain.Subround, error)
	GetSubround(ctx context.Context, subroundID int64) (*domain.Subround, error)
	ListSubrounds(ctx context.Context, roundID int64) ([]domain.Subround, error)
	// SaveSubround writes the subround's membership and aggregate.
	SaveSubround(ctx context.Context, sub *domain.Subround) error
	DeleteSubround(ctx context.Context, subroundID int64) error

	// Games
	CreateGames(ctx context.Context, games []domain.Game) ([]domain.Game, error)
	GetGame(ctx context.Context, gameID int64) (*domain.Game, error)
	ListGames(ctx context.Context, subroundID int64) ([]domain.Game, error)
	// SaveGame writes the resolved flag and result.
	SaveGame(ctx context.Context, game *domain.Game) error
	DeleteGames(ctx context.Context, subroundID int64) error

	// Admin utilities
	Reset(ctx context.Context) error
}
