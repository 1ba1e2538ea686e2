package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/poolcraft/backoffice/internal/migrations"
	"github.com/poolcraft/backoffice/pkg/config"
	"github.com/poolcraft/backoffice/pkg/database"
	"github.com/poolcraft/backoffice/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, database.Options{Verbose: cfg.IsDevelopment()})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if cfg.AdminEmail != "" {
		created, err := migrations.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
		if err != nil {
			log.Fatal("seeding admin failed", zap.Error(err))
		}
		if created {
			log.Info("admin user created", zap.String("email", cfg.AdminEmail))
		}
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
