package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
)

// DeleteAppointmentCommand removes a scheduled appointment.
type DeleteAppointmentCommand struct {
	AppointmentID uuid.UUID
}

// DeleteAppointmentHandler handles the DeleteAppointmentCommand.
type DeleteAppointmentHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewDeleteAppointmentHandler creates a new DeleteAppointmentHandler.
func NewDeleteAppointmentHandler(repo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *DeleteAppointmentHandler {
	return &DeleteAppointmentHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the DeleteAppointmentCommand.
func (h *DeleteAppointmentHandler) Handle(ctx context.Context, cmd DeleteAppointmentCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		appointment, err := loadAppointment(txCtx, h.repo, cmd.AppointmentID)
		if err != nil {
			return err
		}

		if err := appointment.MarkDeleted(); err != nil {
			return err
		}
		if err := h.repo.Delete(txCtx, appointment.ID(), domain.StatusScheduled); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, appointment, appointment.OwnerID())
	})
}
