package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"studiobook/internal/config"
	"studiobook/internal/database"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/realtime"
	"studiobook/internal/server"
	"studiobook/internal/studiolock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.AppEnv})

	log.Info().
		Str("env", cfg.AppEnv).
		Str("port", cfg.Port).
		Str("store", cfg.StoreBackend).
		Msg("Starting studiobook API")

	stores, err := server.OpenStores(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer stores.Close()

	redisClient, err := database.NewRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	var locker studiolock.Locker = studiolock.NewKeyedMutex()
	if redisClient != nil {
		locker = studiolock.NewRedisLocker(redisClient, cfg.LockTTL)
	}

	hub := realtime.NewHub()
	defer hub.Close()

	r, err := server.NewRouter(cfg, server.Dependencies{
		Reservations: stores.Reservations,
		Engineers:    stores.Engineers,
		Locker:       locker,
		Hub:          hub,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
