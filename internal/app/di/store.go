// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"time"

	authadapters "authgate/internal/feature/auth/adapters"
	"authgate/internal/feature/auth/usecase"
	"authgate/internal/platform/db"
	platformmongo "authgate/internal/platform/mongo"
)

// UserStore is the credential store as the process uses it:
// the repository the flows need plus readiness and schema setup.
type UserStore interface {
	usecase.UserRepository
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
}

// StoreConfig selects and tunes the credential store.
type StoreConfig struct {
	DatabaseURL    string
	MongoDatabase  string
	ConnectTimeout time.Duration
}

// NewUserStore opens the store named by the URL scheme.
// mongodb:// and mongodb+srv:// go to MongoDB, anything else to GORM (Postgres or SQLite).
func NewUserStore(cfg StoreConfig) (UserStore, error) {
	if platformmongo.IsMongoDSN(cfg.DatabaseURL) {
		database, err := platformmongo.NewHandle(cfg.DatabaseURL, cfg.MongoDatabase, cfg.ConnectTimeout).Get()
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		return authadapters.NewUserMongo(database), nil
	}

	gdb, err := db.NewHandle(cfg.DatabaseURL, cfg.ConnectTimeout).Get()
	if err != nil {
		return nil, fmt.Errorf("open relational store: %w", err)
	}
	return authadapters.NewUserGorm(gdb), nil
}
