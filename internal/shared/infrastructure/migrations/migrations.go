// Package migrations embeds the schema for both database backends.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "github.com/lib/pq" // database/sql driver "postgres" for schema migrations
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

//go:embed postgres/*.sql
var postgresFS embed.FS

// RunSQLiteMigrations executes all SQLite migrations in order. Every
// statement is idempotent, so it is safe on each startup.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB) error {
	return run(ctx, db, sqliteFS, "sqlite")
}

// RunPostgresMigrations opens url with lib/pq and applies the PostgreSQL
// migrations in order.
func RunPostgresMigrations(ctx context.Context, url string) error {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("failed to open postgres: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	return run(ctx, db, postgresFS, "postgres")
}

// UpFiles lists the .up.sql migrations embedded for dir, in apply order.
func UpFiles(dir string) ([]string, error) {
	fsys, err := fsFor(dir)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)
	return upFiles, nil
}

func fsFor(dir string) (fs.FS, error) {
	switch dir {
	case "sqlite":
		return sqliteFS, nil
	case "postgres":
		return postgresFS, nil
	default:
		return nil, fmt.Errorf("unknown migrations directory %q", dir)
	}
}

func run(ctx context.Context, db *sql.DB, fsys fs.FS, dir string) error {
	upFiles, err := UpFiles(dir)
	if err != nil {
		return err
	}

	for _, file := range upFiles {
		migration, err := fs.ReadFile(fsys, dir+"/"+file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}
