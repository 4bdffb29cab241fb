package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockUserRepo is a mock implementation of domain.UserRepository.
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, role *domain.Role) ([]*domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func userFor(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	u, err := domain.NewUsername(username)
	require.NoError(t, err)
	n, err := domain.NewName("Full " + username)
	require.NoError(t, err)
	return domain.RehydrateUser(uuid.New(), u, n, domain.Email{}, "555-0100", role, time.Now().UTC())
}

func TestGetUserHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("returns user", func(t *testing.T) {
		repo := new(mockUserRepo)
		user := userFor(t, "quinn", domain.RoleDoctor)
		repo.On("FindByID", ctx, user.ID()).Return(user, nil)

		dto, err := NewGetUserHandler(repo).Handle(ctx, GetUserQuery{UserID: user.ID()})

		require.NoError(t, err)
		assert.Equal(t, user.ID(), dto.ID)
		assert.Equal(t, "quinn", dto.Username)
		assert.Equal(t, "DOCTOR", dto.Role)
		assert.Equal(t, "555-0100", dto.Phone)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(mockUserRepo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, domain.ErrUserNotFound)

		dto, err := NewGetUserHandler(repo).Handle(ctx, GetUserQuery{UserID: id})

		assert.Nil(t, dto)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestListUsersHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("all users", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("List", ctx, (*domain.Role)(nil)).Return([]*domain.User{
			userFor(t, "alice", domain.RoleCustomer),
			userFor(t, "quinn", domain.RoleDoctor),
		}, nil)

		dtos, err := NewListUsersHandler(repo).Handle(ctx, ListUsersQuery{})

		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, "alice", dtos[0].Username)
	})

	t.Run("filtered by role", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("List", ctx, mock.MatchedBy(func(r *domain.Role) bool {
			return r != nil && *r == domain.RoleDoctor
		})).Return([]*domain.User{userFor(t, "quinn", domain.RoleDoctor)}, nil)

		dtos, err := NewListUsersHandler(repo).Handle(ctx, ListUsersQuery{Role: "doctor"})

		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, "DOCTOR", dtos[0].Role)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("List", ctx, (*domain.Role)(nil)).Return(nil, nil)

		dtos, err := NewListUsersHandler(repo).Handle(ctx, ListUsersQuery{})

		require.NoError(t, err)
		assert.NotNil(t, dtos)
		assert.Empty(t, dtos)
	})

	t.Run("invalid role", func(t *testing.T) {
		repo := new(mockUserRepo)

		_, err := NewListUsersHandler(repo).Handle(ctx, ListUsersQuery{Role: "nurse"})

		assert.ErrorIs(t, err, domain.ErrInvalidRole)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
