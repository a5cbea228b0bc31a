// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/scout.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Storage drivers
// --------------------------------------------------------------------------

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// AlertsTable is the single persisted collection, matches the store schemas.
const AlertsTable = "comeback_alerts"

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Storage
	StorageDriver  string
	DatabaseURL    string
	DBName         string // postgres schema or sqlite file stem
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	LogLevel    string
	LogFormat   string // text, json

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool

	// Simulation and alerts
	MatchBatchSize    int
	AlertsLimit       int
	RosterFile        string
	AutoCheckInterval time.Duration

	// Alert fan-out
	KafkaBrokers     []string
	KafkaAlertsTopic string
	TelegramToken    string
	TelegramChatID   int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	chatID, err := envInt64("TELEGRAM_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		StorageDriver:  strings.ToLower(envOr("STORAGE_DRIVER", DriverPostgres)),
		DatabaseURL:    envOr("DATABASE_URL", envOr("MONGO_URL", "")),
		DBName:         envOr("DB_NAME", "comeback_scout"),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogFormat:   os.Getenv("LOG_FORMAT"),

		CORSAllowOrigins: envList("CORS_ORIGINS", []string{"*"}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", false),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		MatchBatchSize:    envInt("MATCH_BATCH_SIZE", 4),
		AlertsLimit:       envInt("ALERTS_LIMIT", 50),
		RosterFile:        envOr("ROSTER_FILE", ""),
		AutoCheckInterval: time.Duration(envInt("AUTO_CHECK_INTERVAL_SECONDS", 0)) * time.Second,

		KafkaBrokers:     envList("KAFKA_BROKERS", nil),
		KafkaAlertsTopic: envOr("KAFKA_ALERTS_TOPIC", "comeback-alerts"),
		TelegramToken:    envOr("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   chatID,
	}

	// Production logs default to JSON for the log shipper.
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL (or MONGO_URL) must be set for the postgres driver")
		}
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.MatchBatchSize < 1 {
		return errors.New("MATCH_BATCH_SIZE must be > 0")
	}
	if c.AlertsLimit < 1 {
		return errors.New("ALERTS_LIMIT must be > 0")
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SQLiteDSN returns the sqlite data source. DATABASE_URL wins when set.
func (c *Config) SQLiteDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "file:" + c.DBName + ".db?_pragma=busy_timeout(5000)"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
