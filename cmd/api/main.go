package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hackmap/engine/internal/api"
	"github.com/hackmap/engine/internal/api/auth"
	"github.com/hackmap/engine/internal/api/handlers"
	"github.com/hackmap/engine/internal/metrics"
	"github.com/hackmap/engine/internal/queue/tasks"
	"github.com/hackmap/engine/internal/repository"
	"github.com/hackmap/engine/internal/repository/memory"
	"github.com/hackmap/engine/internal/repository/postgres"
	"github.com/hackmap/engine/internal/seed"
	"github.com/hackmap/engine/internal/services"
	"github.com/hackmap/engine/pkg/config"
	"github.com/hackmap/engine/pkg/database"
	"github.com/hackmap/engine/pkg/logger"
)

const devJWTSecret = "change-me-in-production-please"

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.Register()

	log.Info("Starting hackmap engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("store", cfg.StoreDriver),
	)

	ctx := context.Background()
	checks := map[string]handlers.Checker{}

	// Entity store
	var store repository.Store
	switch cfg.StoreDriver {
	case "postgres":
		db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.AppEnv)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := postgres.Migrate(db); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		checks["postgres"] = func(ctx context.Context) error { return database.Ping(ctx, db) }
		store = postgres.New(db)
		log.Info("Database connected successfully")
		defer closeDB(db)
	default:
		store = memory.New()
		log.Warn("using in-memory store; data is lost on restart")
	}

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		if cfg.AppEnv == "production" {
			log.Fatal("JWT_SECRET must be set in production")
		}
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte(devJWTSecret)
	}
	tokens := auth.NewIssuer(jwtSecret, cfg.TokenTTL)

	var opts []services.Option
	var reminderWorker *asynq.Server
	if cfg.RemindersEnabled() {
		redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}

		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

		client := asynq.NewClient(redisOpt)
		defer client.Close()
		// Memory store ids restart at 1 with every process, so tasks are
		// tagged with this run's epoch and older ones are ignored.
		var epoch string
		if cfg.StoreDriver == "memory" {
			epoch = strconv.FormatInt(time.Now().UnixNano(), 10)
		}
		opts = append(opts, services.WithReminderScheduler(tasks.NewReminderScheduler(client, cfg.ReminderLead).WithEpoch(epoch)))

		// The standalone worker cannot see an in-process store, so reminders
		// for the memory store are processed here.
		if cfg.StoreDriver == "memory" {
			reminderWorker = asynq.NewServer(redisOpt, asynq.Config{Concurrency: cfg.AsynqConcurrency})
			mux := asynq.NewServeMux()
			handler := tasks.NewDeadlineReminderHandler(store, services.NewNotificationService(store)).WithEpoch(epoch)
			mux.HandleFunc(tasks.TypeDeadlineReminder, handler.HandleDeadlineReminder)
			if err := reminderWorker.Start(mux); err != nil {
				log.Fatal("failed to start reminder worker", zap.Error(err))
			}
			log.Info("embedded reminder worker started", zap.Int("concurrency", cfg.AsynqConcurrency))
		}
	} else {
		log.Info("REDIS_ADDR not set, deadline reminders disabled")
	}

	// Services
	userSvc := services.NewUserService(store, opts...)
	hackathonSvc := services.NewHackathonService(store, opts...)

	if cfg.SeedSampleData {
		if err := seed.Run(ctx, hackathonSvc, time.Now()); err != nil {
			log.Fatal("failed to seed sample data", zap.Error(err))
		}
	}

	router := api.NewRouter(api.Dependencies{
		Tokens:         tokens,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		HealthChecks:   checks,

		AuthHandler:          handlers.NewAuthHandler(userSvc, tokens, int64(tokens.TTL().Seconds())),
		UsersHandler:         handlers.NewUsersHandler(userSvc),
		HackathonsHandler:    handlers.NewHackathonsHandler(hackathonSvc),
		RegistrationsHandler: handlers.NewRegistrationsHandler(services.NewRegistrationService(store, opts...)),
		TeamsHandler:         handlers.NewTeamsHandler(services.NewTeamService(store, opts...)),
		IdeasHandler:         handlers.NewIdeasHandler(services.NewIdeaService(store, opts...)),
		NotificationsHandler: handlers.NewNotificationsHandler(services.NewNotificationService(store, opts...)),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
