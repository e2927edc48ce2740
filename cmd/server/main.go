package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/api"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/chat"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/config"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()

	// Connect to MongoDB before the server accepts any request. The store
	// is injected into the core components, so there is no window where a
	// handler can run against an unconnected database.
	connectCtx, cancelConnect := context.WithTimeout(ctx, 10*time.Second)
	ds, err := store.NewMongoStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	cancelConnect()
	if err != nil {
		logger.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer ds.Close(ctx)
	logger.Info().Msg("connected to MongoDB")

	if err := ds.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("index creation failed")
	}

	// Optional Redis client for rate limiting
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		logger.Info().Msg("connected to Redis")
	}

	// Create router
	router := api.NewRouter(logger, ds, rdb)

	// Start the expiry sweeper
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	sweeper := chat.NewSweeper(chat.NewRegistry(ds), cfg.SweepInterval, cfg.StaleThreshold, logger)
	go sweeper.Run(sweepCtx)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting batepapo server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	stopSweeper()

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
