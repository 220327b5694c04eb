// Package db opens the database and keeps its schema and seed data current.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/doc-designer/internal/config"
)

const connectAttempts = 5

// Connect opens the configured database. Postgres connections are retried
// to give the server time to start; DATABASE_DSN, when set, overrides the
// individual settings.
func Connect(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	switch cfg.Driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return db, nil
	case "postgres", "":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	dsn := cfg.DSN()
	if env := GetNormalizedDSN(); env != "" {
		dsn = env
	}
	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			return db, nil
		}
		log.Warn("database not ready, retrying", "attempt", i+1, "of", connectAttempts, "err", err)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("connect postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
}
