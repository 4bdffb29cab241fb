package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence.
// FindByID and FindByUsername return ErrUserNotFound for unknown users.
type UserRepository interface {
	// Save inserts a new user; a duplicate username is ErrUsernameTaken.
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username Username) (*User, error)
	// List returns users ordered by username. A nil role lists everyone.
	List(ctx context.Context, role *Role) ([]*User, error)
}
