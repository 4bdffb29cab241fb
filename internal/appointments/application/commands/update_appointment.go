package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
)

// UpdateAppointmentCommand replaces the booking details of a scheduled
// appointment. A nil PreferredDoctorID keeps the stored preference.
type UpdateAppointmentCommand struct {
	AppointmentID uuid.UUID
	Details       domain.BookingDetails
}

// UpdateAppointmentHandler handles the UpdateAppointmentCommand.
type UpdateAppointmentHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	directory  domain.UserDirectory
	uow        sharedApplication.UnitOfWork
}

// NewUpdateAppointmentHandler creates a new UpdateAppointmentHandler.
func NewUpdateAppointmentHandler(
	repo domain.Repository,
	outboxRepo outbox.Repository,
	directory domain.UserDirectory,
	uow sharedApplication.UnitOfWork,
) *UpdateAppointmentHandler {
	return &UpdateAppointmentHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		directory:  directory,
		uow:        uow,
	}
}

// Handle executes the UpdateAppointmentCommand.
func (h *UpdateAppointmentHandler) Handle(ctx context.Context, cmd UpdateAppointmentCommand) (*domain.Appointment, error) {
	if cmd.Details.PreferredDoctorID != nil {
		if _, err := resolveDoctor(ctx, h.directory, *cmd.Details.PreferredDoctorID); err != nil {
			return nil, err
		}
	}

	return sharedApplication.WithUnitOfWorkResult(ctx, h.uow, func(txCtx context.Context) (*domain.Appointment, error) {
		appointment, err := loadAppointment(txCtx, h.repo, cmd.AppointmentID)
		if err != nil {
			return nil, err
		}

		if err := appointment.Update(cmd.Details); err != nil {
			return nil, err
		}
		if err := h.repo.SaveTransition(txCtx, appointment, domain.StatusScheduled); err != nil {
			return nil, err
		}
		if err := saveEvents(txCtx, h.outboxRepo, appointment, appointment.OwnerID()); err != nil {
			return nil, err
		}
		return appointment, nil
	})
}
