// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"hattournament/src/app/http/handler"
	"hattournament/src/app/middleware"
	"hattournament/src/core/ports"
	"hattournament/src/core/usecase"
	"hattournament/src/infra/config"
	"hattournament/src/infra/logger"
	"hattournament/src/infra/metrics"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	router   *gin.Engine
	http     *http.Server
	registry *prometheus.Registry

	authService *usecase.AuthService

	healthHandler     *handler.HealthHandler
	authHandler       *handler.AuthHandler
	adminHandler      *handler.AdminHandler
	tournamentHandler *handler.TournamentHandler
	roundHandler      *handler.RoundHandler
	subroundHandler   *handler.SubroundHandler
	gameHandler       *handler.GameHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, store ports.Store) *Server {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	var recorder ports.Metrics
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.NewService(registry)
	}

	coreLog := logger.WithComponent(log, "core")
	healthService := usecase.NewHealthService(store, coreLog)
	authService := usecase.NewAuthService(store, cfg.Auth.TokenLifetime, cfg.Auth.BcryptCost, coreLog)
	adminService := usecase.NewAdminService(store, cfg.Admin.Secret, coreLog)
	tournamentService := usecase.NewTournamentService(store, coreLog)
	roundService := usecase.NewRoundService(store, coreLog)
	subroundService := usecase.NewSubroundService(store, recorder, coreLog)
	gameService := usecase.NewGameService(store, recorder, coreLog)

	s := &Server{
		cfg:               cfg,
		log:               log,
		router:            router,
		registry:          registry,
		authService:       authService,
		healthHandler:     handler.NewHealthHandler(healthService),
		authHandler:       handler.NewAuthHandler(authService),
		adminHandler:      handler.NewAdminHandler(adminService),
		tournamentHandler: handler.NewTournamentHandler(tournamentService),
		roundHandler:      handler.NewRoundHandler(roundService),
		subroundHandler:   handler.NewSubroundHandler(subroundService),
		gameHandler:       handler.NewGameHandler(gameService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Recovery first so it sees panics from every later middleware.
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Logging(logger.WithComponent(s.log, "http")))

	if rl := s.cfg.RateLimit; rl.Enabled {
		s.router.Use(middleware.RateLimit(middleware.NewClientLimiter(rl.RPS, rl.Burst, rl.TTL)))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)
	if s.registry != nil {
		s.router.GET(s.cfg.Metrics.Path, gin.WrapH(metrics.NewHandler(s.registry)))
	}

	v1 := s.router.Group("/v1")
	{
		v1.POST("/users/register", s.authHandler.Register)
		v1.POST("/users/login", s.authHandler.Login)
		v1.DELETE("/admin/data", s.adminHandler.Reset)
	}

	auth := v1.Group("", middleware.Auth(s.authService))
	{
		auth.POST("/users/logout", s.authHandler.Logout)

		// Tournaments
		auth.GET("/tournaments", s.tournamentHandler.List)
		auth.POST("/tournaments", s.tournamentHandler.Create)
		auth.GET("/tournaments/:tournament_id", s.tournamentHandler.Get)
		auth.GET("/tournaments/:tournament_id/pairs", s.tournamentHandler.ListPairs)
		auth.POST("/tournaments/:tournament_id/pairs", s.tournamentHandler.CreatePair)
		auth.DELETE("/pairs/:pair_id", s.tournamentHandler.DeletePair)
		auth.GET("/tournaments/:tournament_id/words", s.tournamentHandler.ListWords)
		auth.POST("/tournaments/:tournament_id/words", s.tournamentHandler.CreateWord)
		auth.DELETE("/words/:word_id", s.tournamentHandler.DeleteWord)

		// Rounds
		auth.GET("/tournaments/:tournament_id/rounds", s.roundHandler.List)
		auth.POST("/tournaments/:tournament_id/rounds", s.roundHandler.Create)
		auth.GET("/rounds/:round_id", s.roundHandler.Get)
		auth.DELETE("/rounds/:round_id", s.roundHandler.Delete)
		auth.GET("/rounds/:round_id/pairs", s.roundHandler.ListPairs)
		auth.POST("/rounds/:round_id/pairs", s.roundHandler.AddPair)
		auth.DELETE("/rounds/:round_id/pairs/:pair_id", s.roundHandler.RemovePair)
		auth.GET("/rounds/:round_id/results", s.roundHandler.Results)
		auth.GET("/rounds/:round_id/top", s.roundHandler.Top)

		// Subrounds
		auth.GET("/rounds/:round_id/subrounds", s.subroundHandler.List)
		auth.POST("/rounds/:round_id/subrounds", s.subroundHandler.Create)
		auth.GET("/subrounds/:subround_id", s.subroundHandler.Get)
		auth.DELETE("/subrounds/:subround_id", s.subroundHandler.Delete)
		auth.GET("/subrounds/:subround_id/pairs", s.subroundHandler.ListPairs)
		auth.POST("/subrounds/:subround_id/pairs", s.subroundHandler.AddPair)
		auth.DELETE("/subrounds/:subround_id/pairs/:pair_id", s.subroundHandler.RemovePair)
		auth.GET("/subrounds/:subround_id/words", s.subroundHandler.ListWords)
		auth.POST("/subrounds/:subround_id/words", s.subroundHandler.LinkWords)
		auth.POST("/subrounds/:subround_id/split", s.subroundHandler.Split)
		auth.DELETE("/subrounds/:subround_id/split", s.subroundHandler.UndoSplit)
		auth.GET("/subrounds/:subround_id/games", s.subroundHandler.ListGames)
		auth.GET("/subrounds/:subround_id/results", s.subroundHandler.Results)

		// Games
		auth.GET("/games/:game_id", s.gameHandler.Get)
		auth.GET("/games/:game_id/pairs", s.gameHandler.Participants)
		auth.GET("/games/:game_id/result", s.gameHandler.GetResult)
		auth.POST("/games/:game_id/result", s.gameHandler.SubmitResult)
		auth.DELETE("/games/:game_id/result", s.gameHandler.ClearResult)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	// Graceful shutdown
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
