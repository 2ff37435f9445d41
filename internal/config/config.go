package config

import (
	"errors"
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Storage
	StoreDriver string // postgres | sqlite
	DatabaseURL string // postgres connection string
	SQLitePath  string
	TablePrefix string

	// Auth. Both empty disables authentication.
	AuthJWKSURL   string
	AuthJWTSecret string

	// Logging
	LogFormat   string // json | text
	LogDir      string // empty = stdout only
	LogMaxFiles int

	// Debug flags
	Debug bool // Enables debug level logging
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StoreDriver:   getEnv("STORE_DRIVER", getDefaultDriver(env)),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/wikitree.db"),
		TablePrefix:   getTablePrefix(env),
		AuthJWKSURL:   getEnv("AUTH_JWKS_URL", ""),
		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		LogFormat:     getEnv("LOG_FORMAT", getDefaultLogFormat(env)),
		LogDir:        getEnv("LOG_DIR", ""),
		LogMaxFiles:   getEnvInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Environment, validation.In("dev", "test", "prod")),
		validation.Field(&c.StoreDriver, validation.Required, validation.In(DriverPostgres, DriverSQLite)),
		validation.Field(&c.DatabaseURL, validation.When(c.StoreDriver == DriverPostgres,
			validation.Required.Error("is required when STORE_DRIVER=postgres"))),
		validation.Field(&c.SQLitePath, validation.When(c.StoreDriver == DriverSQLite, validation.Required)),
		validation.Field(&c.LogFormat, validation.In("json", "text")),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
	)
}

// AuthEnabled reports whether requests must carry a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.AuthJWKSURL != "" || c.AuthJWTSecret != ""
}

// ErrAuthRequired is returned by callers that refuse to run prod without auth.
var ErrAuthRequired = errors.New("authentication must be configured in prod")

// getDefaultDriver uses the embedded database for local development
func getDefaultDriver(env string) string {
	if env == "dev" {
		return DriverSQLite
	}
	return DriverPostgres
}

// getDefaultLogFormat keeps console output readable outside prod
func getDefaultLogFormat(env string) string {
	if env == "prod" {
		return "json"
	}
	return "text"
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
