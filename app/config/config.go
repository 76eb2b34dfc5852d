package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv          = "local"
	defaultAppPort         = "8080"
	defaultDatabaseDriver  = "postgres"
	defaultPostgresDSN     = "host=localhost user=postgres password=postgres dbname=catalog port=5432 sslmode=disable"
	defaultMySQLDSN        = "root:root@tcp(127.0.0.1:3306)/catalog?charset=utf8mb4&parseTime=True&loc=Local"
	defaultSQLiteDSN       = "catalog.db?_foreign_keys=1"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds the process settings read from the environment.
type Config struct {
	AppEnv          string
	AppPort         string
	DatabaseDriver  string
	DatabaseDSN     string
	SeedOnStart     bool
	SeedFile        string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Load reads envFiles (a missing file is not an error) and builds a Config
// from the resulting environment. Variables already set in the process
// environment take precedence over the files.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:   get("APP_ENV", defaultAppEnv),
		AppPort:  get("APP_PORT", defaultAppPort),
		SeedFile: get("SEED_FILE", ""),
		LogLevel: get("LOG_LEVEL", ""),
	}

	driver := strings.ToLower(get("DB_DRIVER", defaultDatabaseDriver))
	switch driver {
	case "postgres", "mysql", "sqlite":
		cfg.DatabaseDriver = driver
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q (supported: postgres, mysql, sqlite)", driver)
	}
	cfg.DatabaseDSN = get("DATABASE_DSN", defaultDSN(driver))

	seed, err := strconv.ParseBool(get("SEED_ON_START", "false"))
	if err != nil {
		return nil, fmt.Errorf("config: SEED_ON_START: %w", err)
	}
	cfg.SeedOnStart = seed

	timeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("config: SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.AppPort
}

func defaultDSN(driver string) string {
	switch driver {
	case "mysql":
		return defaultMySQLDSN
	case "sqlite":
		return defaultSQLiteDSN
	default:
		return defaultPostgresDSN
	}
}

func get(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
