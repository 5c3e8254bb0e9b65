package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hackmap/engine/internal/repository/postgres"
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

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for migrations")
	}

	db, err := database.OpenPostgres(context.Background(), cfg.DatabaseURL, cfg.AppEnv)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := postgres.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "migrations completed (%d models)\n", len(postgres.Models()))
}
