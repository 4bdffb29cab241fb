package domain

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is the root entity of a consistency boundary.
type AggregateRoot interface {
	ID() uuid.UUID
	CreatedAt() time.Time
	UpdatedAt() time.Time
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot carries identity, timestamps and pending domain events.
type BaseAggregateRoot struct {
	id           uuid.UUID
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []DomainEvent
}

// NewBaseAggregateRoot creates an aggregate root with a fresh ID.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return NewBaseAggregateRootWithID(uuid.New())
}

// NewBaseAggregateRootWithID creates an aggregate root with a specific ID.
func NewBaseAggregateRootWithID(id uuid.UUID) BaseAggregateRoot {
	now := time.Now().UTC()
	return BaseAggregateRoot{
		id:           id,
		createdAt:    now,
		updatedAt:    now,
		domainEvents: make([]DomainEvent, 0),
	}
}

// RehydrateBaseAggregateRoot recreates an aggregate root from persisted state.
func RehydrateBaseAggregateRoot(id uuid.UUID, createdAt, updatedAt time.Time) BaseAggregateRoot {
	return BaseAggregateRoot{
		id:           id,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		domainEvents: make([]DomainEvent, 0),
	}
}

func (a BaseAggregateRoot) ID() uuid.UUID        { return a.id }
func (a BaseAggregateRoot) CreatedAt() time.Time { return a.createdAt }
func (a BaseAggregateRoot) UpdatedAt() time.Time { return a.updatedAt }

// Touch updates the updatedAt timestamp.
func (a *BaseAggregateRoot) Touch() {
	a.updatedAt = time.Now().UTC()
}

// DomainEvents returns all uncommitted domain events.
func (a *BaseAggregateRoot) DomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents removes all uncommitted domain events.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = make([]DomainEvent, 0)
}

// AddDomainEvent records a domain event on the aggregate.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}
