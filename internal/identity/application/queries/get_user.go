package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
)

// GetUserQuery contains the parameters for getting a single user.
type GetUserQuery struct {
	UserID uuid.UUID
}

// GetUserHandler handles the GetUserQuery.
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new GetUserHandler.
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the GetUserQuery.
func (h *GetUserHandler) Handle(ctx context.Context, query GetUserQuery) (*UserDTO, error) {
	user, err := h.repo.FindByID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}
