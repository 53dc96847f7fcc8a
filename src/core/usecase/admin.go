package usecase

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
)

// AdminService exposes maintenance operations guarded by a shared secret.
type AdminService struct {
	store  ports.Store
	secret string
	log    *slog.Logger
}

func NewAdminService(store ports.Store, secret string, log *slog.Logger) *AdminService {
	return &AdminService{store: store, secret: secret, log: log}
}

// Reset deletes every user, token and tournament.
func (s *AdminService) Reset(ctx context.Context, secret string) error {
	if s.secret == "" {
		return domain.NewForbiddenError("admin secret not configured")
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) != 1 {
		return domain.NewForbiddenError("invalid admin secret")
	}
	if err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		return tx.Reset(ctx)
	}); err != nil {
		return err
	}
	s.log.Warn("all data reset")
	return nil
}
