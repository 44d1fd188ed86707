// Package db opens the relational credential store through GORM.
package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"authgate/internal/shared/once"
)

const sqliteScheme = "sqlite://"

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Opener opens a *gorm.DB for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// IsSQLiteDSN reports whether dsn points at a SQLite database.
func IsSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, sqliteScheme) || strings.HasPrefix(dsn, "file:")
}

// Dialector picks the GORM driver for a DSN: sqlite:// and file: go to SQLite,
// everything else is handed to the Postgres driver.
func Dialector(dsn string) gorm.Dialector {
	if IsSQLiteDSN(dsn) {
		return sqlite.Open(strings.TrimPrefix(dsn, sqliteScheme))
	}
	return postgres.Open(dsn)
}

// GormOpener is the production Opener.
// TranslateError lets duplicate-key violations surface as gorm.ErrDuplicatedKey.
func GormOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(Dialector(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry keeps calling opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// NewHandle returns a process-wide handle that connects on first use.
func NewHandle(dsn string, timeout time.Duration) *once.Handle[*gorm.DB] {
	return once.NewHandle(func() (*gorm.DB, error) {
		db, err := ConnectWithRetry(dsn, timeout, GormOpener)
		if err != nil {
			return nil, err
		}
		slog.Info("relational store connected", "driver", db.Dialector.Name())
		return db, nil
	})
}
