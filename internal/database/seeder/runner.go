package seeder

import (
	"context"
	"fmt"
	"time"

	"job-portal/internal/database"

	log "github.com/sirupsen/logrus"
)

// Seeder inserts idempotent demo data. Re-running a seeder must not duplicate rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

type Runner struct {
	Seeders []Seeder
	Log     log.FieldLogger
}

// Run executes the seeders in order and stops at the first failure.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Log != nil {
			r.Log.WithFields(log.Fields{
				"seeder":  s.Name(),
				"elapsed": time.Since(start).String(),
			}).Info("seeder completed")
		}
	}
	return nil
}
