package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	HTTPAddr  string

	// Database
	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string

	// Redis
	RedisURL     string
	UserCacheTTL time.Duration

	// RabbitMQ
	RabbitMQURL string

	// Outbox
	OutboxPollInterval    time.Duration
	OutboxBatchSize       int
	OutboxMaxRetries      int
	OutboxStatsInterval   time.Duration
	OutboxRetentionDays   int
	OutboxCleanupInterval time.Duration

	// Publisher circuit breaker
	PublisherBreakerThreshold int
	PublisherBreakerTimeout   time.Duration

	// Queue
	DispatchMaxAttempts int

	// Worker
	WorkerHealthAddr string

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	databaseURL := getEnv("DATABASE_URL", "")

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", detectDriver(databaseURL)),
		DatabaseURL:    databaseURL,
		SQLitePath:     getEnv("SQLITE_PATH", defaultSQLitePath()),

		RedisURL:     getEnv("REDIS_URL", ""),
		UserCacheTTL: getDurationEnv("USER_CACHE_TTL", 5*time.Minute),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		OutboxPollInterval:    getDurationEnv("OUTBOX_POLL_INTERVAL", time.Second),
		OutboxBatchSize:       getIntEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:      getIntEnv("OUTBOX_MAX_RETRIES", 5),
		OutboxStatsInterval:   getDurationEnv("OUTBOX_STATS_INTERVAL", 30*time.Second),
		OutboxRetentionDays:   getIntEnv("OUTBOX_RETENTION_DAYS", 14),
		OutboxCleanupInterval: getDurationEnv("OUTBOX_CLEANUP_INTERVAL", 24*time.Hour),

		PublisherBreakerThreshold: getIntEnv("PUBLISHER_BREAKER_THRESHOLD", 5),
		PublisherBreakerTimeout:   getDurationEnv("PUBLISHER_BREAKER_TIMEOUT", 30*time.Second),

		DispatchMaxAttempts: getIntEnv("QUEUE_DISPATCH_MAX_ATTEMPTS", 3),

		WorkerHealthAddr: getEnv("WORKER_HEALTH_ADDR", ":8082"),

		MCPAddr:      getEnv("MCP_ADDR", ":8081"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),
	}

	return cfg, nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DispatchMaxAttempts < 1 {
		return errors.New("QUEUE_DISPATCH_MAX_ATTEMPTS must be at least 1")
	}
	if c.OutboxBatchSize < 1 {
		return errors.New("OUTBOX_BATCH_SIZE must be at least 1")
	}
	if c.PublisherBreakerThreshold < 1 {
		return errors.New("PUBLISHER_BREAKER_THRESHOLD must be at least 1")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesPostgres reports whether the postgres driver is selected.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseDriver == DriverPostgres
}

func detectDriver(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".petservice", "data.db")
	}
	return filepath.Join(home, ".petservice", "data.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
