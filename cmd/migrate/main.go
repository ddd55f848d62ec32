package main

import (
	"flag"
	"log"

	"pariksha/internal/config"
	"pariksha/internal/database"
	"pariksha/internal/logger"

	"go.uber.org/zap"
)

func main() {
	migrationsDir := flag.String("dir", "database/migrations", "path to the migrations directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if err := database.RunMigrations(cfg.GetDSN(), *migrationsDir); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations applied", zap.String("dir", *migrationsDir))
}
