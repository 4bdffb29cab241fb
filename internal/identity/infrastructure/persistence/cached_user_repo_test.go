package persistence

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
	"github.com/inheaven/petservice/pkg/observability"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUserStore is an in-memory domain.UserRepository that counts lookups.
type memoryUserStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*domain.User
	lookups int
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *memoryUserStore) Save(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID()] = user
	return nil
}

func (s *memoryUserStore) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *memoryUserStore) FindByUsername(_ context.Context, username domain.Username) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *memoryUserStore) List(_ context.Context, _ *domain.Role) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

// unreachableRedis points at a port nothing listens on.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCachedUserRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	store := newMemoryUserStore()
	metrics := observability.NewInMemoryMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo := NewCachedUserRepository(store, unreachableRedis(t), time.Minute, logger, metrics)

	user := newUser(t, "quinn", "", domain.RoleDoctor)
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByID(ctx, user.ID())
	require.NoError(t, err)
	assert.Equal(t, user.ID(), found.ID())
	assert.Equal(t, 1, store.lookups)
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricUserCacheMisses))
	assert.Equal(t, int64(0), metrics.GetCounter(observability.MetricUserCacheHits))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCachedUserRepository_DelegatesUncachedReads(t *testing.T) {
	ctx := context.Background()
	store := newMemoryUserStore()
	repo := NewCachedUserRepository(store, unreachableRedis(t), time.Minute, nil, nil)

	user := newUser(t, "quinn", "", domain.RoleDoctor)
	require.NoError(t, store.Save(ctx, user))

	byName, err := repo.FindByUsername(ctx, user.Username())
	require.NoError(t, err)
	assert.Equal(t, user.ID(), byName.ID())

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRow_RoundTripsThroughDomain(t *testing.T) {
	user := newUser(t, "quinn", "quinn@clinic.com", domain.RoleDoctor)

	back, err := toUserRow(user).toDomain()

	require.NoError(t, err)
	assert.Equal(t, user.ID(), back.ID())
	assert.Equal(t, user.Email(), back.Email())
	assert.Equal(t, user.Role(), back.Role())
}

func TestUserRow_RejectsCorruptRole(t *testing.T) {
	row := toUserRow(newUser(t, "quinn", "", domain.RoleDoctor))
	row.Role = "JANITOR"

	_, err := row.toDomain()

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}
