package main

import (
	"context"
	"flag"
	"os"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/database/migration"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/database/seeder"
	"job-portal/internal/logger"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	seed := flag.Bool("seed", false, "run demo seeders after migrating")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	l, closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer closeLog()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		l.Fatalf("failed to connect database: %v", err)
	}
	defer func() { _ = db.Close() }()

	r := migration.Runner{Dir: cfg.App.MigrationsDir, Log: l}
	applied, err := r.Run(ctx, db.SQLDB())
	if err != nil {
		l.Fatalf("migration failed: %v", err)
	}
	l.WithField("applied", applied).Info("migrations done")

	if !*seed {
		return
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(), Log: l}).Run(ctx, db); err != nil {
		l.Fatalf("seeding failed: %v", err)
	}
}
