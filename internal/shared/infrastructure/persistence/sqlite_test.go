package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, value TEXT)`)
	require.NoError(t, err)
	return db
}

func countNotes(t *testing.T, db *sql.DB, value string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notes WHERE value = ?`, value).Scan(&n))
	return n
}

func TestSQLiteUnitOfWork_NestedBeginJoinsOuter(t *testing.T) {
	uow := NewSQLiteUnitOfWork(setupTestDB(t))
	ctx := context.Background()

	outerCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	innerCtx, err := uow.Begin(outerCtx)
	require.NoError(t, err)

	outer, _ := SQLiteTxInfoFromContext(outerCtx)
	inner, _ := SQLiteTxInfoFromContext(innerCtx)
	assert.True(t, outer.Owned)
	assert.False(t, inner.Owned)
	assert.Same(t, outer.Tx, inner.Tx)

	// inner commit and rollback are no-ops
	require.NoError(t, uow.Commit(innerCtx))
	require.NoError(t, uow.Rollback(innerCtx))
	_, err = outer.Tx.Exec(`INSERT INTO notes (value) VALUES ('still_active')`)
	require.NoError(t, err)

	require.NoError(t, uow.Rollback(outerCtx))
}

func TestSQLiteUnitOfWork_CommitAndRollback(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)
	ctx := context.Background()

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = SQLiteExecutor(txCtx, db).ExecContext(txCtx, `INSERT INTO notes (value) VALUES ('kept')`)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(txCtx))
	assert.Equal(t, 1, countNotes(t, db, "kept"))

	txCtx, err = uow.Begin(ctx)
	require.NoError(t, err)
	_, err = SQLiteExecutor(txCtx, db).ExecContext(txCtx, `INSERT INTO notes (value) VALUES ('dropped')`)
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))
	assert.Equal(t, 0, countNotes(t, db, "dropped"))
}

func TestSQLiteUnitOfWork_WithoutTransaction(t *testing.T) {
	uow := NewSQLiteUnitOfWork(setupTestDB(t))

	assert.ErrorContains(t, uow.Commit(context.Background()), "no transaction in context")
	assert.ErrorContains(t, uow.Rollback(context.Background()), "no transaction in context")
}

func TestSQLiteExecutor_FallsBackToDB(t *testing.T) {
	db := setupTestDB(t)
	assert.Same(t, db, SQLiteExecutor(context.Background(), db))

	_, ok := SQLiteTxInfoFromContext(WithSQLiteTx(context.Background(), nil, true))
	assert.False(t, ok)
}

func TestTxInfoFromContext_Postgres(t *testing.T) {
	_, ok := TxInfoFromContext(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), txKey{}, "not a TxInfo")
	_, ok = TxInfoFromContext(ctx)
	assert.False(t, ok)
}

func TestTimeHelpers(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2026, 3, 4, 10, 30, 0, 5, loc)

	s := FormatTime(ts)
	assert.Equal(t, "2026-03-04T08:30:00.000000005Z", s)

	parsed, err := ParseTime(s)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))

	// fixed width keeps lexical and chronological order aligned
	assert.Less(t, FormatTime(ts), FormatTime(ts.Add(time.Nanosecond*995)))

	assert.False(t, FormatNullTime(nil).Valid)
	got, err := ParseNullTime(FormatNullTime(&ts))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(ts))

	got, err = ParseNullTime(sql.NullString{})
	require.NoError(t, err)
	assert.Nil(t, got)
}
