// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/eastfallsrec/matchbook/internal/api/auth"
	"github.com/eastfallsrec/matchbook/internal/config"
	"github.com/eastfallsrec/matchbook/internal/db"
	"github.com/eastfallsrec/matchbook/internal/refresh"
	"github.com/eastfallsrec/matchbook/internal/scheduler"
	"github.com/eastfallsrec/matchbook/internal/store"
)

const shutdownTimeout = 30 * time.Second
const sessionPruneCron = "*/15 * * * *"

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func buildStore(cfg *config.Config) (store.Store, func(), error) {
	if cfg.Features.UseSampleData {
		log.Info().Msg("Serving fixed sample data; writes are no-ops")
		return store.NewSample(), func() {}, nil
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	cleanup := func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}
	return store.NewSQLite(database), cleanup, nil
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	if cfg.App.SecretKey == "" {
		log.Warn().Msg("APP_SECRET_KEY is not set; session cookies cannot be issued and logins will fail")
	}

	dataStore, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build data store")
	}
	defer cleanup()

	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := auth.BootstrapMembers(bootstrapCtx, dataStore); err != nil {
		bootstrapCancel()
		log.Fatal().Err(err).Msg("Failed to bootstrap member accounts")
	}
	bootstrapCancel()

	maintenance, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize maintenance scheduler")
	}
	if err := maintenance.AddCron("session_prune", sessionPruneCron, auth.PruneExpiredSessions); err != nil {
		log.Fatal().Err(err).Msg("Failed to register session prune job")
	}
	maintenance.Start()
	defer func() {
		if err := maintenance.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop maintenance scheduler")
		}
	}()

	hub := refresh.NewHub()

	// Create server instance
	server := newServer(cfg, dataStore, hub)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
