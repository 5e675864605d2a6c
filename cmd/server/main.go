package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/notes-api/internal/api"
	"github.com/dom/notes-api/internal/auth"
	"github.com/dom/notes-api/internal/cache"
	"github.com/dom/notes-api/internal/config"
	"github.com/dom/notes-api/internal/logger"
	"github.com/dom/notes-api/internal/repository"
	"github.com/dom/notes-api/internal/repository/memory"
	"github.com/dom/notes-api/internal/repository/postgres"
	"github.com/dom/notes-api/internal/repository/sqlite"
	"github.com/dom/notes-api/internal/service"
	"github.com/dom/notes-api/internal/websocket"
	"github.com/rs/zerolog"
	gormLogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Init(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize repositories
	repos, err := openRepositories(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}
	log.Info().Str("driver", cfg.StorageDriver).Msg("storage ready")

	deps := service.Dependencies{
		Hasher: auth.NewBcryptHasher(cfg.BcryptCost),
	}
	tokens := auth.NewTokenCodec(cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	deps.Tokens = tokens

	// Optional profile cache
	if cfg.CacheEnabled() {
		client, err := cache.NewClient(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
		}
		profileCache := cache.NewProfileCache(client, cfg.ProfileCacheTTL)
		defer profileCache.Close()
		deps.Cache = profileCache
		log.Info().Str("addr", cfg.RedisAddr).Msg("profile cache enabled")
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub(log)
	go hub.Run()
	deps.Events = hub

	// Initialize services
	services := service.NewServices(repos, deps)

	// Initialize router
	router := api.NewRouter(services, tokens, hub, log, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	hub.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func openRepositories(cfg *config.Config) (*repository.Repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		return memory.NewRepositories(), nil
	case config.StorageDriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlite.NewRepositories(db), nil
	}

	level := gormLogger.Error
	if cfg.IsDevelopment() && zerolog.GlobalLevel() <= zerolog.DebugLevel {
		level = gormLogger.Info
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL, level)
	if err != nil {
		return nil, err
	}
	return postgres.NewRepositories(db), nil
}
