package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"keyrelay/config"
	"keyrelay/internal/api"
	"keyrelay/internal/api/middleware"
	deviceModels "keyrelay/internal/device/model"
	deviceRepository "keyrelay/internal/device/repository"
	deviceUsecase "keyrelay/internal/device/usecase"
	"keyrelay/internal/handlers"
	identityModels "keyrelay/internal/identity/model"
	identityRepository "keyrelay/internal/identity/repository"
	messageModels "keyrelay/internal/message/model"
	messageRepository "keyrelay/internal/message/repository"
	messageUsecase "keyrelay/internal/message/usecase"
	"keyrelay/pkg/logger"
)

func main() {
	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Bun.DSN))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		appLogger.Errorf("failed to ping database: %v", err)
		os.Exit(1)
	}

	if err := createSchema(ctx, db); err != nil {
		appLogger.Errorf("failed to create schema: %v", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			appLogger.Errorf("failed to ping redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		appLogger.Info("connected to redis", "addr", cfg.Redis.Addr)
	}

	identityRepo := identityRepository.NewIdentityRepository(db, *appLogger)
	deviceRepo := deviceRepository.NewDeviceRepository(db, *appLogger)
	messageRepo := messageRepository.NewMessageRepository(db, *appLogger)

	deviceUC := deviceUsecase.NewDeviceUsecase(deviceRepo, identityRepo, *appLogger, *cfg)
	messageUC := messageUsecase.NewMessageUsecase(messageRepo, deviceUC, deviceRepo, identityRepo, *appLogger, *cfg)

	h := handlers.NewHandler(deviceUC, messageUC, db)
	auth := middleware.NewAuth(identityRepo)
	rl := middleware.NewRateLimiter(redisClient, appLogger.Zerolog())

	router := api.NewRouter(h, auth, rl, appLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Errorf("server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("server forced to shutdown: %v", err)
		os.Exit(1)
	}

	appLogger.Info("server stopped")
}

func createSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`); err != nil {
		return err
	}

	tables := []any{
		(*identityModels.Identity)(nil),
		(*deviceModels.Device)(nil),
		(*deviceModels.SignedPreKey)(nil),
		(*deviceModels.OneTimePreKey)(nil),
		(*messageModels.Message)(nil),
	}
	for _, t := range tables {
		if _, err := db.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
