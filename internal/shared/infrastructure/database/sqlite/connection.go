package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/inheaven/petservice/internal/shared/infrastructure/database"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

func init() {
	database.Register(database.DriverSQLite, NewConnection)
}

// Connection wraps sql.DB for SQLite.
type Connection struct {
	db *sql.DB
}

// NewConnection opens the SQLite file named by cfg.SQLitePath.
func NewConnection(ctx context.Context, cfg database.Config) (database.Connection, error) {
	db, err := Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	return &Connection{db: db}, nil
}

// Open opens and pings a SQLite database with the pragmas the repositories
// rely on.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = database.DefaultSQLitePath()
	}

	dsn := path
	if path != MemoryPath {
		if err := database.EnsureDirectory(path); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		// WAL lets CLI reads run while the server writes.
		dsn = withPragmas(path, "journal_mode(WAL)", "foreign_keys(1)", "busy_timeout(5000)", "synchronous(NORMAL)")
	} else {
		dsn = withPragmas(path, "foreign_keys(1)")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Single writer; also keeps one shared :memory: database per handle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	return db, nil
}

func withPragmas(path string, pragmas ...string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(path)
	for _, p := range pragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

// DB returns the underlying sql.DB.
func (c *Connection) DB() *sql.DB {
	return c.db
}

func (c *Connection) Driver() database.Driver {
	return database.DriverSQLite
}

func (c *Connection) Close() error {
	return c.db.Close()
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
