package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRef is what the queue needs to know about a user.
type UserRef struct {
	ID          uuid.UUID
	DisplayName string
	IsDoctor    bool
}

// UserDirectory resolves user ids. ResolveUser returns an error matching
// sharedDomain.ErrNotFound for unknown ids.
type UserDirectory interface {
	ResolveUser(ctx context.Context, id uuid.UUID) (UserRef, error)
}
