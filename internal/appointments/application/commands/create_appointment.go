package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
)

// CreateAppointmentCommand books a visit for a customer.
type CreateAppointmentCommand struct {
	CustomerID uuid.UUID
	Details    domain.BookingDetails
}

// CreateAppointmentHandler handles the CreateAppointmentCommand.
type CreateAppointmentHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	directory  domain.UserDirectory
	uow        sharedApplication.UnitOfWork
}

// NewCreateAppointmentHandler creates a new CreateAppointmentHandler.
func NewCreateAppointmentHandler(
	repo domain.Repository,
	outboxRepo outbox.Repository,
	directory domain.UserDirectory,
	uow sharedApplication.UnitOfWork,
) *CreateAppointmentHandler {
	return &CreateAppointmentHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		directory:  directory,
		uow:        uow,
	}
}

// Handle executes the CreateAppointmentCommand.
func (h *CreateAppointmentHandler) Handle(ctx context.Context, cmd CreateAppointmentCommand) (*domain.Appointment, error) {
	if _, err := h.directory.ResolveUser(ctx, cmd.CustomerID); err != nil {
		if errors.Is(err, sharedDomain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, cmd.CustomerID)
		}
		return nil, err
	}
	if cmd.Details.PreferredDoctorID != nil {
		if _, err := resolveDoctor(ctx, h.directory, *cmd.Details.PreferredDoctorID); err != nil {
			return nil, err
		}
	}

	return sharedApplication.WithUnitOfWorkResult(ctx, h.uow, func(txCtx context.Context) (*domain.Appointment, error) {
		appointment, err := domain.NewAppointment(cmd.CustomerID, cmd.Details)
		if err != nil {
			return nil, err
		}

		if err := h.repo.Save(txCtx, appointment); err != nil {
			return nil, err
		}
		if err := saveEvents(txCtx, h.outboxRepo, appointment, cmd.CustomerID); err != nil {
			return nil, err
		}
		return appointment, nil
	})
}
