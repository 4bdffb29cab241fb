package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
)

// UserDTO is a data transfer object for users.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserDTO converts a user to its transfer form.
func ToUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Username:  u.Username().String(),
		FullName:  u.FullName().String(),
		Email:     u.Email().String(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}
}
