// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends understood by StoreConfig.Backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
// Values are loaded from environment variables with the prefix "APP".
// Example: APP_STORE=postgres, APP_LOG_LEVEL=debug
type Config struct {
	// Store selects and decorates the user repository
	Store StoreConfig

	// Database configuration, used only by the postgres backend
	Database DatabaseConfig

	// Logging configuration
	Log LogConfig
}

// StoreConfig controls how the user repository is assembled.
type StoreConfig struct {
	// Backend is the repository implementation: memory or postgres (default: memory)
	Backend string `envconfig:"STORE" default:"memory"`

	// ValidateNames wraps the repository in a validating decorator that
	// rejects payloads without a well-formed name (default: true)
	ValidateNames bool `envconfig:"VALIDATE_NAMES" default:"true"`

	// LogOperations wraps the repository in a decorator that logs every call (default: false)
	LogOperations bool `envconfig:"LOG_OPERATIONS" default:"false"`

	// SeedFile is an optional YAML file of users created at startup
	SeedFile string `envconfig:"SEED_FILE"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// Host is the database host (default: localhost)
	Host string `envconfig:"DB_HOST" default:"localhost"`

	// Port is the database port (default: 5432)
	Port int `envconfig:"DB_PORT" default:"5432"`

	// User is the database user (default: postgres)
	User string `envconfig:"DB_USER" default:"postgres"`

	// Password is the database password
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`

	// Name is the database name (default: usermanager)
	Name string `envconfig:"DB_NAME" default:"usermanager"`

	// SSLMode is the SSL mode for the connection (default: disable)
	SSLMode string `envconfig:"DB_SSLMODE" default:"disable"`

	// MaxOpenConns is the maximum number of open connections (default: 10)
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`

	// MaxIdleConns is the minimum number of idle connections kept open (default: 2)
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"2"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 5m)
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

	// ConnectTimeout bounds pool creation and the initial ping (default: 5s)
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: plain)
	Format string `envconfig:"LOG_FORMAT" default:"plain"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Validate rejects settings no component can act on.
func (c *StoreConfig) Validate() error {
	switch strings.ToLower(c.Backend) {
	case BackendMemory, BackendPostgres:
		return nil
	default:
		return fmt.Errorf("unknown store backend %q (want %s or %s)", c.Backend, BackendMemory, BackendPostgres)
	}
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	var cfg Config

	// Each section is processed on its own so variables read APP_STORE
	// rather than APP_STORE_STORE.
	if err := envconfig.Process("APP", &cfg.Store); err != nil {
		return nil, fmt.Errorf("failed to load store config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(cfg.Store.Backend)
	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main.go during startup.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
