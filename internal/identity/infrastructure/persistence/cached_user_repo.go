package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
	"github.com/inheaven/petservice/pkg/observability"
	"github.com/redis/go-redis/v9"
)

const userCachePrefix = "petservice:user:"

// CachedUserRepository is a read-through Redis cache in front of another
// UserRepository. Only FindByID is cached; the queue resolves doctors by ID
// on every dispatch. Redis failures are logged and served from the store.
type CachedUserRepository struct {
	next    domain.UserRepository
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewCachedUserRepository wraps next with a Redis cache.
func NewCachedUserRepository(
	next domain.UserRepository,
	client *redis.Client,
	ttl time.Duration,
	logger *slog.Logger,
	metrics observability.Metrics,
) *CachedUserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &CachedUserRepository{
		next:    next,
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func cacheKey(id uuid.UUID) string {
	return userCachePrefix + id.String()
}

// Save writes through to the store and drops any cached copy.
func (r *CachedUserRepository) Save(ctx context.Context, user *domain.User) error {
	if err := r.next.Save(ctx, user); err != nil {
		return err
	}
	if err := r.client.Del(ctx, cacheKey(user.ID())).Err(); err != nil {
		r.logger.WarnContext(ctx, "user cache invalidation failed", "user_id", user.ID(), "error", err)
	}
	return nil
}

// FindByID serves from Redis when possible.
func (r *CachedUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	key := cacheKey(id)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var row userRow
		if jsonErr := json.Unmarshal(data, &row); jsonErr == nil {
			if user, convErr := row.toDomain(); convErr == nil {
				r.metrics.Counter(observability.MetricUserCacheHits, 1)
				return user, nil
			}
		}
		r.logger.WarnContext(ctx, "discarding unreadable cached user", "user_id", id)
	case errors.Is(err, redis.Nil):
	default:
		r.logger.WarnContext(ctx, "user cache read failed", "user_id", id, "error", err)
	}
	r.metrics.Counter(observability.MetricUserCacheMisses, 1)

	user, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(toUserRow(user)); err == nil {
		if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.WarnContext(ctx, "user cache write failed", "user_id", id, "error", err)
		}
	}
	return user, nil
}

func (r *CachedUserRepository) FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	return r.next.FindByUsername(ctx, username)
}

func (r *CachedUserRepository) List(ctx context.Context, role *domain.Role) ([]*domain.User, error) {
	return r.next.List(ctx, role)
}
