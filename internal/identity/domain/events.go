package domain

import sharedDomain "github.com/inheaven/petservice/internal/shared/domain"

const (
	AggregateType = "User"

	RoutingKeyUserRegistered = "identity.user.registered"
)

// UserRegistered is emitted when a user joins the directory.
type UserRegistered struct {
	sharedDomain.BaseEvent
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// NewUserRegistered creates a UserRegistered event.
func NewUserRegistered(u *User) *UserRegistered {
	return &UserRegistered{
		BaseEvent: sharedDomain.NewBaseEvent(u.ID(), AggregateType, RoutingKeyUserRegistered),
		Username:  u.Username().String(),
		FullName:  u.FullName().String(),
		Role:      u.Role().String(),
	}
}
