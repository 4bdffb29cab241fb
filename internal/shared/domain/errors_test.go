package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/inheaven/petservice/internal/shared/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsDomainError(t *testing.T) {
	t.Run("sentinel kinds", func(t *testing.T) {
		assert.True(t, domain.IsDomainError(domain.ErrNotFound))
		assert.True(t, domain.IsDomainError(domain.ErrInvalidInput))
		assert.True(t, domain.IsDomainError(domain.ErrConflict))
	})

	t.Run("wrapped kinds", func(t *testing.T) {
		err := fmt.Errorf("appointment 42: %w", domain.ErrNotFound)
		assert.True(t, domain.IsDomainError(err))
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("infrastructure errors", func(t *testing.T) {
		assert.False(t, domain.IsDomainError(errors.New("connection refused")))
		assert.False(t, domain.IsDomainError(nil))
	})
}

type testAggregate struct {
	domain.BaseAggregateRoot
}

type testEvent struct {
	domain.BaseEvent
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	agg := &testAggregate{BaseAggregateRoot: domain.NewBaseAggregateRoot()}
	event := &testEvent{BaseEvent: domain.NewBaseEvent(agg.ID(), "Test", "test.aggregate.created")}

	agg.AddDomainEvent(event)
	assert.Len(t, agg.DomainEvents(), 1)
	assert.Equal(t, agg.ID(), agg.DomainEvents()[0].AggregateID())
	assert.Equal(t, "test.aggregate.created", agg.DomainEvents()[0].RoutingKey())

	agg.ClearDomainEvents()
	assert.Empty(t, agg.DomainEvents())
}

func TestBaseAggregateRoot_Touch(t *testing.T) {
	agg := domain.NewBaseAggregateRoot()
	before := agg.UpdatedAt()
	agg.Touch()
	assert.False(t, agg.UpdatedAt().Before(before))
	assert.Equal(t, agg.CreatedAt(), domain.RehydrateBaseAggregateRoot(agg.ID(), agg.CreatedAt(), agg.UpdatedAt()).CreatedAt())
}
