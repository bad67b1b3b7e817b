package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/staffhub/employee-api/internal/api"
	"github.com/staffhub/employee-api/internal/infrastructure/config"
	mongodb "github.com/staffhub/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/staffhub/employee-api/internal/infrastructure/db/redis"
	"github.com/staffhub/employee-api/pkg/logger"
)

// @title        Employee API
// @version      1.0
// @description  Employee records with cookie-based JWT sessions.
// @BasePath     /
func main() {
	// Local development convenience; production relies on the environment.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Startup is sequential and blocking: no requests are accepted until the
	// store connection is proven.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodb.NewEmployeeRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure employee indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("employee api listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
