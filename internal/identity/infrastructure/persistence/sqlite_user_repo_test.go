package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
	"github.com/inheaven/petservice/internal/shared/infrastructure/database"
	"github.com/inheaven/petservice/internal/shared/infrastructure/database/sqlite"
	"github.com/inheaven/petservice/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))
	return db
}

func newUser(t *testing.T, username, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := domain.NewUsername(username)
	require.NoError(t, err)
	n, err := domain.NewName("Full " + username)
	require.NoError(t, err)
	e, err := domain.NewEmail(email)
	require.NoError(t, err)
	user, err := domain.NewUser(u, n, e, "555-0100", role)
	require.NoError(t, err)
	return user
}

func TestSQLiteUserRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	user := newUser(t, "quinn", "quinn@clinic.com", domain.RoleDoctor)
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByID(ctx, user.ID())
	require.NoError(t, err)
	assert.Equal(t, user.ID(), found.ID())
	assert.Equal(t, "quinn", found.Username().String())
	assert.Equal(t, "quinn@clinic.com", found.Email().String())
	assert.Equal(t, "555-0100", found.Phone())
	assert.True(t, found.IsDoctor())
	assert.True(t, user.CreatedAt().Equal(found.CreatedAt()))

	byName, err := repo.FindByUsername(ctx, user.Username())
	require.NoError(t, err)
	assert.Equal(t, user.ID(), byName.ID())

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSQLiteUserRepository_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newUser(t, "quinn", "", domain.RoleDoctor)))
	err := repo.Save(ctx, newUser(t, "quinn", "", domain.RoleCustomer))

	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestSQLiteUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	for _, u := range []*domain.User{
		newUser(t, "zoe", "", domain.RoleCustomer),
		newUser(t, "quinn", "", domain.RoleDoctor),
		newUser(t, "adams", "", domain.RoleDoctor),
	} {
		require.NoError(t, repo.Save(ctx, u))
	}

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "adams", all[0].Username().String())
	assert.Equal(t, "zoe", all[2].Username().String())

	doctor := domain.RoleDoctor
	doctors, err := repo.List(ctx, &doctor)
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	for _, d := range doctors {
		assert.True(t, d.IsDoctor())
	}

	admin := domain.RoleAdmin
	none, err := repo.List(ctx, &admin)
	require.NoError(t, err)
	assert.Empty(t, none)
}
