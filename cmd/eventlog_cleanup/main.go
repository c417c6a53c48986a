package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"studiobook/internal/config"
	"studiobook/internal/database"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if _, err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.AppEnv}); err != nil {
		log.Fatal().Err(err).Msg("Failed to init logger")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-cfg.EventLogRetention)
	deleted, err := repository.NewEventRepository(db).DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Fatal().Err(err).Msg("cleanup event_log failed")
	}

	log.Info().
		Int64("event_log", deleted).
		Time("cutoff", cutoff).
		Msg("event log cleanup completed")
}
