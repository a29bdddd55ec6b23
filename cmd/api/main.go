package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/aurumbay/aurumbay/internal/config"
	"github.com/aurumbay/aurumbay/internal/connect"
	"github.com/aurumbay/aurumbay/internal/container"
	"github.com/aurumbay/aurumbay/internal/core"
	"github.com/aurumbay/aurumbay/internal/routes"
	"github.com/aurumbay/aurumbay/internal/store"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info().Str("environment", cfg.Environment).Msg("starting aurumbay API server")

	// Snapshot store: remote document mirror when Mongo is configured,
	// otherwise a local JSON document.
	var st store.Store
	if cfg.UseMongo() {
		mongoClient, err := connect.MongoDBConnect(cfg.MongoDBURI)
		if err != nil {
			logger.Error().Err(err).Msg("failed to connect to MongoDB")
			os.Exit(1)
		}
		logger.Info().Msg("connected to MongoDB")
		st = store.NewMongoStore(mongoClient)
	} else {
		st = store.NewFileStore(cfg.SnapshotPath)
		logger.Info().Str("path", cfg.SnapshotPath).Msg("using local snapshot store")
	}

	co, err := core.New(context.Background(), st, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize core")
		os.Exit(1)
	}

	appContainer := container.NewContainer(logger, cfg, st, co)
	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	if err := connect.MongoDBDisconnect(); err != nil {
		logger.Error().Err(err).Msg("error disconnecting from MongoDB")
	}

	logger.Info().Msg("server exited")
}

func setupLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.IsProduction() {
		return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
