package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/database"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
)

// RegisterUserCommand adds a doctor, customer or administrator to the directory.
type RegisterUserCommand struct {
	Username string
	FullName string
	Email    string
	Phone    string
	Role     string
}

// RegisterUserHandler handles the RegisterUserCommand.
type RegisterUserHandler struct {
	repo       domain.UserRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewRegisterUserHandler creates a new RegisterUserHandler.
func NewRegisterUserHandler(repo domain.UserRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RegisterUserHandler {
	return &RegisterUserHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the RegisterUserCommand.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	username, err := domain.NewUsername(cmd.Username)
	if err != nil {
		return nil, err
	}
	fullName, err := domain.NewName(cmd.FullName)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(cmd.Role)
	if err != nil {
		return nil, err
	}

	return sharedApplication.WithUnitOfWorkResult(ctx, h.uow, func(txCtx context.Context) (*domain.User, error) {
		existing, err := h.repo.FindByUsername(txCtx, username)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrUsernameTaken
		}

		user, err := domain.NewUser(username, fullName, email, cmd.Phone, role)
		if err != nil {
			return nil, err
		}

		if err := h.repo.Save(txCtx, user); err != nil {
			if database.IsUniqueViolation(err) {
				return nil, domain.ErrUsernameTaken
			}
			return nil, err
		}

		events := user.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(txCtx, uuid.Nil))
		msgs, err := outbox.NewMessages(events)
		if err != nil {
			return nil, err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return nil, err
		}
		user.ClearDomainEvents()

		return user, nil
	})
}
