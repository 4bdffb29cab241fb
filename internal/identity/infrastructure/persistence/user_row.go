package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
)

const userColumns = `id, username, full_name, email, phone, role, created_at`

// userRow is the stored form of a user shared by both stores.
type userRow struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserRow(u *domain.User) userRow {
	return userRow{
		ID:        u.ID(),
		Username:  u.Username().String(),
		FullName:  u.FullName().String(),
		Email:     u.Email().String(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}
}

func (r userRow) toDomain() (*domain.User, error) {
	username, err := domain.NewUsername(r.Username)
	if err != nil {
		return nil, fmt.Errorf("stored username %q: %w", r.Username, err)
	}
	fullName, err := domain.NewName(r.FullName)
	if err != nil {
		return nil, fmt.Errorf("stored full name: %w", err)
	}
	email, err := domain.NewEmail(r.Email)
	if err != nil {
		return nil, fmt.Errorf("stored email: %w", err)
	}
	role, err := domain.ParseRole(r.Role)
	if err != nil {
		return nil, fmt.Errorf("stored role %q: %w", r.Role, err)
	}
	return domain.RehydrateUser(r.ID, username, fullName, email, r.Phone, role, r.CreatedAt), nil
}

func roleArg(role *domain.Role) any {
	if role == nil {
		return nil
	}
	return role.String()
}
