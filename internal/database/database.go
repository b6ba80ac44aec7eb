// Package database opens the record store selected by configuration.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zjoart/paises/internal/config"
	"github.com/zjoart/paises/internal/countries"
	"github.com/zjoart/paises/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Backend is a Store with a schema and a connection pool lifecycle
type Backend interface {
	countries.Store
	EnsureTables(ctx context.Context) error
	DropTables(ctx context.Context) error
	Close() error
}

// Open connects to the configured driver and verifies the connection
func Open(ctx context.Context, cfg config.DBConfig) (Backend, error) {
	logger.Info("database: connecting", logger.Fields{"driver": cfg.Driver})

	switch cfg.Driver {
	case "mysql", "sqlite3":
		db, err := sql.Open(cfg.Driver, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
		}
		configurePool(db, cfg)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
		}
		return countries.NewSQLStore(db, countries.Dialect(cfg.Driver)), nil

	case "postgres":
		gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}
		configurePool(sqlDB, cfg)
		if err := sqlDB.PingContext(ctx); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return countries.NewGormStore(gdb), nil
	}

	return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
}

func configurePool(db *sql.DB, cfg config.DBConfig) {
	if cfg.Driver == "sqlite3" {
		// SQLite allows a single writer
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		return
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime == 0 {
		lifetime = time.Hour
	}
	db.SetConnMaxLifetime(lifetime)
}
