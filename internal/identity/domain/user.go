package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
)

var (
	ErrUserNotFound  = fmt.Errorf("user %w", sharedDomain.ErrNotFound)
	ErrUsernameTaken = fmt.Errorf("username already taken: %w", sharedDomain.ErrConflict)
)

// User represents a user account in the system.
type User struct {
	sharedDomain.BaseAggregateRoot
	username Username
	fullName Name
	email    Email
	phone    string
	role     Role
}

// NewUser registers a user.
func NewUser(username Username, fullName Name, email Email, phone string, role Role) (*User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	u := &User{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		username:          username,
		fullName:          fullName,
		email:             email,
		phone:             phone,
		role:              role,
	}

	u.AddDomainEvent(NewUserRegistered(u))

	return u, nil
}

// RehydrateUser recreates a user from persisted state.
func RehydrateUser(id uuid.UUID, username Username, fullName Name, email Email, phone string, role Role, createdAt time.Time) *User {
	return &User{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(id, createdAt, createdAt),
		username:          username,
		fullName:          fullName,
		email:             email,
		phone:             phone,
		role:              role,
	}
}

// Getters
func (u *User) Username() Username { return u.username }
func (u *User) FullName() Name     { return u.fullName }
func (u *User) Email() Email       { return u.email }
func (u *User) Phone() string      { return u.phone }
func (u *User) Role() Role         { return u.role }

// IsDoctor reports whether the user may take appointments from the queue.
func (u *User) IsDoctor() bool {
	return u.role == RoleDoctor
}
