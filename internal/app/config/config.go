// Package config loads the application settings from the environment.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"authgate/internal/platform/db"
)

// EnvProduction is the APP_ENV value that turns on production behaviour.
const EnvProduction = "production"

var (
	// ErrMissingJWTSecret is returned when JWT_SECRET is empty.
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

	// ErrMissingDatabaseURL is returned when DATABASE_URL is empty.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
)

// Config holds the application settings.
type Config struct {
	JWTSecret   string // session token signing secret
	DatabaseURL string // credential store connection string
	AppEnv      string // development | production

	Port               string
	LogLevel           string
	CORSAllowedOrigins string // comma separated, empty disables CORS

	MongoDatabase    string
	RunMigrations    bool
	DBConnectTimeout time.Duration
}

// Load reads .env files when present, then the environment, and validates the result.
func Load() (*Config, error) {
	loadEnvFiles()

	dsn := os.Getenv("DATABASE_URL")
	cfg := &Config{
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DatabaseURL: dsn,
		AppEnv:      getEnv("APP_ENV", "development"),

		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),

		MongoDatabase:    getEnv("MONGO_DATABASE", "mydatabase"),
		// SQLite は起動時にスキーマを作成する（ローカル用途）
		RunMigrations:    getEnvAsBool("RUN_MIGRATIONS", db.IsSQLiteDSN(dsn)),
		DBConnectTimeout: getEnvAsDuration("DB_CONNECT_TIMEOUT", 60*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails on settings the process cannot run without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

// IsProduction reports whether the deployment mode is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// SecureCookies reports whether the session cookie requires HTTPS.
func (c *Config) SecureCookies() bool {
	return c.IsProduction()
}

// loadEnvFiles loads .env.local then .env; variables already set are never overridden.
func loadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(filepath.Clean(name))
		}
	}
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsBool accepts true/false (and 1/0); anything else falls back to defaultValue.
func getEnvAsBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
