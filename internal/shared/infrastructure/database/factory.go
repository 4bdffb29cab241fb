package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds database configuration.
type Config struct {
	// Driver is detected from URL when empty.
	Driver Driver

	// URL is the PostgreSQL connection string.
	URL string

	// SQLitePath defaults to ~/.petservice/data.db. ":memory:" opens a
	// private in-memory database.
	SQLitePath string

	// MaxConns applies to PostgreSQL only.
	MaxConns int
}

// Connection is a live database handle. Concrete connections expose the
// driver-native handle (Pool or DB) for repositories.
type Connection interface {
	Ping(ctx context.Context) error
	Close() error
	Driver() Driver
}

// ConnectFunc opens a connection for a registered driver.
type ConnectFunc func(ctx context.Context, cfg Config) (Connection, error)

var connectors = map[Driver]ConnectFunc{}

// Register installs the connection factory for a driver. Driver packages
// call it from init.
func Register(driver Driver, fn ConnectFunc) {
	connectors[driver] = fn
}

// NewConnection creates a database connection based on configuration.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.URL)
	}
	if !driver.IsValid() {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	connect, ok := connectors[driver]
	if !ok {
		return nil, fmt.Errorf("database driver %s is not linked into this binary", driver)
	}
	return connect(ctx, cfg)
}

// DefaultSQLitePath returns the default SQLite database path.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".petservice", "data.db")
}

// EnsureDirectory creates the parent directory for a file path if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
