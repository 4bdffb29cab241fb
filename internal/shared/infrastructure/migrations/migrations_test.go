package migrations

import (
	"context"
	"testing"

	"github.com/inheaven/petservice/internal/shared/infrastructure/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSQLiteMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunSQLiteMigrations(ctx, db))
	// second run is a no-op
	require.NoError(t, RunSQLiteMigrations(ctx, db))

	for _, table := range []string{"users", "appointments", "outbox"} {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestUpFiles(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		files, err := UpFiles(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_initial_schema.up.sql"}, files)
	}

	_, err := UpFiles("mysql")
	assert.Error(t, err)
}
