package queries

import (
	"context"

	"github.com/inheaven/petservice/internal/identity/domain"
)

// ListUsersQuery lists users ordered by username. Role, when set, is matched
// case-insensitively.
type ListUsersQuery struct {
	Role string
}

// ListUsersHandler handles the ListUsersQuery.
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new ListUsersHandler.
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the ListUsersQuery.
func (h *ListUsersHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserDTO, error) {
	var role *domain.Role
	if query.Role != "" {
		parsed, err := domain.ParseRole(query.Role)
		if err != nil {
			return nil, err
		}
		role = &parsed
	}

	users, err := h.repo.List(ctx, role)
	if err != nil {
		return nil, err
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, ToUserDTO(u))
	}
	return dtos, nil
}
