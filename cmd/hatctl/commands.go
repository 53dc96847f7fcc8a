package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hattournament/src/app/bootstrap"
	"hattournament/src/app/seed"
	"hattournament/src/app/server"
	"hattournament/src/infra/config"
	"hattournament/src/infra/db"
	"hattournament/src/infra/logger"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(healthCmd)

	seedCmd.Flags().StringVar(&seedOpts.Username, "username", "demo", "Owner account to create")
	seedCmd.Flags().StringVar(&seedOpts.Password, "password", "demo-password", "Owner password")
	seedCmd.Flags().IntVar(&seedOpts.Pairs, "pairs", 8, "Number of player pairs")
	seedCmd.Flags().IntVar(&seedOpts.Words, "words", 60, "Number of words in the bank")
	seedCmd.Flags().IntVar(&seedOpts.Difficulty, "max-difficulty", 3, "Highest word difficulty")
	seedCmd.Flags().IntVar(&seedOpts.Rounds, "rounds", 2, "Number of rounds")
	seedCmd.Flags().IntVar(&seedOpts.Subrounds, "subrounds", 2, "Number of subrounds per round")
	seedCmd.Flags().Uint64Var(&seedOpts.Seed, "seed", 0, "Random seed (0 picks one from the clock)")

	healthCmd.Flags().StringVar(&healthHost, "host", "http://localhost:8080", "Base URL of the server")
	healthCmd.Flags().BoolVar(&healthLocal, "local", false, "Check the configured store directly instead of a running server")
}

var (
	seedOpts    seed.Options
	healthHost  string
	healthLocal bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(cfg.Log)

		store, closeStore, err := bootstrap.OpenStore(cmd.Context(), cfg.Database, log)
		if err != nil {
			return err
		}
		defer closeStore()

		return server.New(cfg, log, store).Run()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPostgres(cmd.Context(), func(ctx context.Context, pg *db.Postgres) error {
			return pg.Migrate(ctx)
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPostgres(cmd.Context(), func(ctx context.Context, pg *db.Postgres) error {
			return pg.MigrationStatus(ctx)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create an example tournament with pairs, words, rounds and subrounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Database.Driver == "memory" {
			return errors.New("seeding the in-memory store has no effect; use the postgres driver")
		}
		log := logger.New(cfg.Log)

		store, closeStore, err := bootstrap.OpenStore(cmd.Context(), cfg.Database, log)
		if err != nil {
			return err
		}
		defer closeStore()

		opts := seedOpts
		if opts.Seed == 0 {
			opts.Seed = uint64(time.Now().UnixNano())
		}
		opts.BcryptCost = cfg.Auth.BcryptCost

		res, err := seed.NewGenerator(store, opts, log).Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "tournament %d %q: %d pairs, %d words, %d rounds, %d subrounds (seed %d)\n",
			res.Tournament.ID, res.Tournament.Name, len(res.Pairs), len(res.Words), len(res.Rounds), len(res.Subrounds), opts.Seed)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of a running server or of the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		if healthLocal {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := bootstrap.CheckStore(ctx, cfg.Database, logger.New(cfg.Log)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "storage healthy")
			return nil
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthHost+"/health/detailed", nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Status Code: %d\n%s\n", resp.StatusCode, body)
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server unhealthy: %s", resp.Status)
		}
		return nil
	},
}

func withPostgres(parent context.Context, fn func(ctx context.Context, pg *db.Postgres) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()
	return fn(ctx, pg)
}
