package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	identityDomain "github.com/inheaven/petservice/internal/identity/domain"
	identityPersistence "github.com/inheaven/petservice/internal/identity/infrastructure/persistence"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	"github.com/inheaven/petservice/internal/shared/infrastructure/database/sqlite"
	"github.com/inheaven/petservice/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, repo identityDomain.UserRepository, username string, role identityDomain.Role) *identityDomain.User {
	t.Helper()
	u, err := identityDomain.NewUsername(username)
	require.NoError(t, err)
	n, err := identityDomain.NewName("Dr " + username)
	require.NoError(t, err)
	user, err := identityDomain.NewUser(u, n, identityDomain.Email{}, "", role)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func TestIdentityDirectory_ResolveUser(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))

	users := identityPersistence.NewSQLiteUserRepository(db)
	doctor := register(t, users, "quinn", identityDomain.RoleDoctor)
	customer := register(t, users, "jane", identityDomain.RoleCustomer)

	dir := NewIdentityDirectory(users)

	ref, err := dir.ResolveUser(ctx, doctor.ID())
	require.NoError(t, err)
	assert.Equal(t, doctor.ID(), ref.ID)
	assert.Equal(t, "Dr quinn", ref.DisplayName)
	assert.True(t, ref.IsDoctor)

	ref, err = dir.ResolveUser(ctx, customer.ID())
	require.NoError(t, err)
	assert.False(t, ref.IsDoctor)

	_, err = dir.ResolveUser(ctx, uuid.New())
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}
