package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.logLevel())

	// signal-aware context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := setupServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up services")
	}
	defer services.Close()

	// Show the cached results before the first fetch completes
	services.Syncer.Restore(ctx)

	log.Info().
		Str("results_url", cfg.ResultsBaseURL).
		Str("cache_backend", cfg.CacheBackend).
		Dur("poll_interval", cfg.PollInterval).
		Int("jurisdictions", services.Catalog.Len()).
		Msg("starting lotterydash")

	server := setupServer(cfg, services)

	go func() {
		if err := services.Dashboard.Start(ctx); err != nil {
			log.Error().Err(err).Msg("dashboard service failed")
		}
	}()

	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		if err := services.Scheduler.Run(ctx); err != nil {
			log.Error().Err(err).Msg("scheduler exited unexpectedly")
		}
	}()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	// Scheduler discards any fetch still in flight
	select {
	case <-schedulerDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("timed out waiting for scheduler")
	}

	log.Info().Msg("lotterydash shutdown complete")
}
