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

	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"parcelhub/cmd"
	"parcelhub/internal/adapters/out/postgres"
	redisadapter "parcelhub/internal/adapters/out/redis"
	"parcelhub/internal/pkg/logger"
	"parcelhub/internal/pkg/metrics"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	appLogger := logger.New("parcelhub", configs.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustGormOpen(configs.DSN())
	redisClient, err := redisadapter.Connect(ctx, redisadapter.ConnectConfig{
		URL:           configs.RedisURL,
		RetryAttempts: 5,
		RetryInterval: 2 * time.Second,
	})
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}

	metrics.Register()

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, appLogger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.JobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e := app.Router()
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown", logger.Error(err))
	}
	jobManager.StopAll()
	app.Publisher().Wait()

	_ = redisClient.Close()
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), postgres.GormConfig())
	if err != nil {
		log.Fatalf("connection to postgres through gorm: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}
	return gormDB
}
