package commands

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rondasapi/internal/config"
	"rondasapi/internal/database"
	"rondasapi/internal/logging"
)

// environment is what the database-backed commands share.
type environment struct {
	cfg *config.AppConfig
	log *logging.Logger
	db  *sql.DB
}

func openEnvironment(ctx context.Context) (*environment, error) {
	cfg := config.Load()
	log := logging.FromConfig(cfg.Log, cfg.Location())

	db, err := database.NewPostgres(ctx, cfg.Database, 3)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &environment{cfg: cfg, log: log, db: db}, nil
}

func (e *environment) Close() error { return e.db.Close() }

func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, 2*time.Minute)
}
