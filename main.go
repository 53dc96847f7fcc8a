// Package main is the entry point for the hat tournament API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"hattournament/src/app/bootstrap"
	"hattournament/src/app/server"
	"hattournament/src/infra/config"
	"hattournament/src/infra/logger"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
		"db_driver", cfg.Database.Driver,
	)

	store, closeStore, err := bootstrap.OpenStore(context.Background(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Run blocks until shutdown signal is received
	return server.New(cfg, log, store).Run()
}
