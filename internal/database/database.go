package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/OpenRelief/relief/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Postgres usually comes up alongside the service in a compose
// deployment, so the first pings are allowed to fail.
const (
	pingAttempts   = 5
	pingRetryDelay = 2 * time.Second
)

// Connect opens a pooled Postgres connection and waits for the server
// to answer pings. Timestamps are stored in UTC.
func Connect(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config cannot be nil")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxConnLifetimeSeconds) * time.Second)

	if err := waitForPing(sqlDB); err != nil {
		return nil, err
	}

	slog.Info("database connection established",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
	)

	return db, nil
}

func waitForPing(sqlDB pinger) error {
	return pingWithRetry(sqlDB, pingAttempts, pingRetryDelay)
}

func pingWithRetry(sqlDB pinger, attempts int, delay time.Duration) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = sqlDB.Ping(); err == nil {
			return nil
		}
		if attempt < attempts {
			slog.Warn("database not ready, retrying",
				"attempt", attempt,
				"error", err,
			)
			time.Sleep(delay)
		}
	}
	return fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
}

type pinger interface {
	Ping() error
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	slog.Info("database connection closed")
	return nil
}

// HealthCheck pings the database once.
func HealthCheck(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}
