package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/api"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/service"
	mongostore "github.com/AntonioJadrejci/CroAviationBackend/internal/infrastructure/db/mongo"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/infrastructure/queue"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/infrastructure/storage"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/pkg/config"
	"github.com/AntonioJadrejci/CroAviationBackend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A service with no store must not serve: fail fast at startup.
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongostore.NewUserRepository(db)
	planeRepo := mongostore.NewPlaneRepository(db)

	// The unique email index backs registration correctness; without it the
	// check-then-insert race reopens.
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := planeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create plane indexes")
	}

	files, err := storage.NewLocalStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare upload directory")
	}

	counter := queue.NewDispatcher(cfg.CounterWorkers, userRepo, log)
	counter.Start(ctx)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	planeService := service.NewPlaneService(planeRepo, userRepo, counter, log)

	e := api.NewRouter(api.Deps{
		DB:             db,
		AuthService:    authService,
		PlaneService:   planeService,
		Files:          files,
		UploadDir:      files.Dir(),
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
