package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
)

// AuthService registers users and issues login tokens.
type AuthService struct {
	store    ports.Store
	lifetime time.Duration
	cost     int
	log      *slog.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService. A zero lifetime falls back to
// domain.DefaultTokenLifetime, a zero cost to bcrypt.DefaultCost.
func NewAuthService(store ports.Store, lifetime time.Duration, cost int, log *slog.Logger) *AuthService {
	if lifetime <= 0 {
		lifetime = domain.DefaultTokenLifetime
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{store: store, lifetime: lifetime, cost: cost, log: log, now: time.Now}
}

// Register creates a user with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username, err := validateName("username", username)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewValidationError("password", "too long")
		}
		return nil, err
	}

	var user *domain.User
	err = s.store.Atomic(ctx, func(tx ports.Tx) error {
		user, err = tx.CreateUser(ctx, username, string(hash))
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the password and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	var token domain.Token
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		user, err := tx.GetUserByUsername(ctx, strings.TrimSpace(username))
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.NewUnauthorizedError("invalid credentials")
			}
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return domain.NewUnauthorizedError("invalid credentials")
		}
		now := s.now()
		token = domain.Token{
			ID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
			UserID:    user.ID,
			ExpiresAt: now.Add(s.lifetime),
			CreatedAt: now,
		}
		return tx.CreateToken(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Logout revokes a token.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	return s.store.Atomic(ctx, func(tx ports.Tx) error {
		return tx.DeleteToken(ctx, tokenID)
	})
}

// Authenticate resolves a token to its user id. Expired tokens are removed.
func (s *AuthService) Authenticate(ctx context.Context, tokenID string) (int64, error) {
	if tokenID == "" {
		return 0, domain.NewUnauthorizedError("missing token")
	}
	var (
		userID  int64
		expired bool
	)
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		tok, err := tx.GetToken(ctx, tokenID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.NewUnauthorizedError("invalid token")
			}
			return err
		}
		if tok.Expired(s.now()) {
			expired = true
			return tx.DeleteToken(ctx, tokenID)
		}
		userID = tok.UserID
		return nil
	})
	if err != nil {
		return 0, err
	}
	if expired {
		return 0, domain.NewUnauthorizedError("token expired")
	}
	return userID, nil
}
