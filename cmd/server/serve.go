package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"authgate/internal/app/config"
	"authgate/internal/app/di"
	"authgate/internal/app/router"
	"authgate/internal/platform/logging"
	"authgate/internal/platform/metrics"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

The users table (SQL) or the unique email index (MongoDB) must exist before the
first request. Run "authgate migrate" once, or set RUN_MIGRATIONS=true to create
them on start. RUN_MIGRATIONS defaults to true for sqlite:// and file: stores
and to false otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users table or collection index and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			store, err := di.NewUserStore(storeConfig(cfg))
			if err != nil {
				return err
			}
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			slog.Info("migration completed")
			return nil
		},
	}
}

// setup loads the configuration and installs the process logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(os.Stdout, cfg.IsProduction(), cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return cfg, nil
}

func storeConfig(cfg *config.Config) di.StoreConfig {
	return di.StoreConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MongoDatabase:  cfg.MongoDatabase,
		ConnectTimeout: cfg.DBConnectTimeout,
	}
}

func runServe(ctx context.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	store, err := di.NewUserStore(storeConfig(cfg))
	if err != nil {
		return err
	}
	if cfg.RunMigrations {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		slog.Info("migration completed")
	}

	app, err := di.NewApp(cfg, store, metrics.New())
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(app, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
