// Package database opens the GORM connection and owns the schema.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wishlist/internal/config"
	"wishlist/internal/models"
)

const retryBase = 500 * time.Millisecond

// Open connects to the configured database, retrying with exponential
// backoff while the server is not reachable yet.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, oops.Code("DB_UNSUPPORTED_DRIVER").In("database").
			Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	var db *gorm.DB
	backoff := retry.WithMaxRetries(cfg.DBConnectRetries, retry.NewExponential(retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		db, err = gorm.Open(dialector, gormConfig())
		if err != nil {
			slog.Warn("database not ready, retrying", "driver", cfg.DatabaseDriver, "error", err)
			return retry.RetryableError(err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.Warn("database ping failed, retrying", "driver", cfg.DatabaseDriver, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").In("database").
			With("driver", cfg.DatabaseDriver).Wrapf(err, "failed to connect to database")
	}

	if cfg.DatabaseDriver == config.DriverSQLite {
		if err := tuneSQLite(db); err != nil {
			return nil, err
		}
	}

	slog.Info("database connected", "driver", cfg.DatabaseDriver)
	return db, nil
}

// OpenSQLite opens an SQLite database from a DSN without retries. Tests use
// it with in-memory DSNs.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").In("database").Wrapf(err, "failed to open sqlite")
	}
	if err := tuneSQLite(db); err != nil {
		return nil, err
	}
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// SQLite serialises writers anyway; a single connection keeps in-memory
// databases alive and turns transactions into a real critical section.
func tuneSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").In("database").Wrap(err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db.Exec("PRAGMA foreign_keys = ON").Error
}

// Migrate creates or updates every table and index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Collection{},
		&models.Item{},
		&models.PriceHistoryEntry{},
	); err != nil {
		return oops.Code("DB_MIGRATE_FAILED").In("database").Wrapf(err, "auto migrate")
	}

	// At most one default collection per owner.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_collections_owner_default ON collections (owner_id) WHERE is_default",
	).Error; err != nil {
		return oops.Code("DB_MIGRATE_FAILED").In("database").Wrapf(err, "create default collection index")
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// IsDuplicateKey reports whether err was caused by a unique constraint.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
