package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hackmap/engine/internal/metrics"
	"github.com/hackmap/engine/internal/queue/tasks"
	"github.com/hackmap/engine/internal/repository/postgres"
	"github.com/hackmap/engine/internal/services"
	"github.com/hackmap/engine/pkg/config"
	"github.com/hackmap/engine/pkg/database"
	"github.com/hackmap/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.Register()

	if !cfg.RemindersEnabled() {
		log.Fatal("REDIS_ADDR is required to run the worker")
	}
	// The memory store lives inside the API process, which runs its own
	// reminder worker in that mode.
	if cfg.StoreDriver != "postgres" {
		log.Fatal("the standalone worker requires STORE_DRIVER=postgres")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		},
		asynq.Config{
			Concurrency: cfg.AsynqConcurrency,
		},
	)

	// Initialize DB and store for task handlers
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.AppEnv)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	store := postgres.New(db)

	handler := tasks.NewDeadlineReminderHandler(store, services.NewNotificationService(store))
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeDeadlineReminder, handler.HandleDeadlineReminder)

	log.Info("asynq worker starting", zap.Int("concurrency", cfg.AsynqConcurrency))
	if err := srv.Start(mux); err != nil {
		log.Fatal("worker failed to start", zap.Error(err))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", zap.String("signal", sig.String()))

	// Allow in-flight tasks to finish gracefully
	srv.Shutdown()
}
