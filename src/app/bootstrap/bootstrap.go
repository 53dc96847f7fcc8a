// Package bootstrap opens the configured store for the server binary and
// the hatctl commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"hattournament/src/core/ports"
	"hattournament/src/infra/config"
	"hattournament/src/infra/db"
	"hattournament/src/infra/memstore"
	"hattournament/src/core/usecase"
	"hattournament/src/infra/repo"
)

// OpenStore returns the store selected by cfg.Database.Driver and a func
// releasing it. Postgres is migrated first when AutoMigrate is set.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (ports.Store, func(), error) {
	switch cfg.Driver {
	case "memory":
		log.Warn("using in-memory store; data is lost on exit")
		return memstore.New(), func() {}, nil
	case "postgres":
		pg, err := db.New(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return repo.NewPostgresRepository(pg, log), pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// CheckStore opens the configured store without migrating it and runs the
// storage health check served at /health/detailed.
func CheckStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) error {
	cfg.AutoMigrate = false
	store, closeStore, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var svc ports.ExternalService = usecase.NewHealthService(store, log)
	return svc.Health(ctx)
}
