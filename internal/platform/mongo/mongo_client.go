// Package mongo opens the document-backed credential store.
package mongo

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"authgate/internal/shared/once"
)

// IsMongoDSN reports whether dsn is a MongoDB connection string.
func IsMongoDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "mongodb://") || strings.HasPrefix(dsn, "mongodb+srv://")
}

// NewMongoClient connects to uri and verifies the connection with a ping.
func NewMongoClient(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, err
	}

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		slog.Error("Mongo connection failed", "error", err)
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("Mongo connection successful")
	return client, nil
}

// NewHandle returns a process-wide handle to the named database, connecting on first use.
func NewHandle(uri, database string, timeout time.Duration) *once.Handle[*mongo.Database] {
	return once.NewHandle(func() (*mongo.Database, error) {
		client, err := NewMongoClient(context.Background(), uri, timeout)
		if err != nil {
			return nil, err
		}
		return client.Database(database), nil
	})
}
