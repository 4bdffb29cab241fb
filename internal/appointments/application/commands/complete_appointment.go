package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
)

// CompleteAppointmentCommand finishes a visit. DoctorID becomes the final
// assigned doctor.
type CompleteAppointmentCommand struct {
	AppointmentID uuid.UUID
	DoctorID      uuid.UUID
}

// CompleteAppointmentHandler handles the CompleteAppointmentCommand.
type CompleteAppointmentHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	directory  domain.UserDirectory
	uow        sharedApplication.UnitOfWork
	recorder   Recorder
}

// NewCompleteAppointmentHandler creates a new CompleteAppointmentHandler.
func NewCompleteAppointmentHandler(
	repo domain.Repository,
	outboxRepo outbox.Repository,
	directory domain.UserDirectory,
	uow sharedApplication.UnitOfWork,
	recorder Recorder,
) *CompleteAppointmentHandler {
	return &CompleteAppointmentHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		directory:  directory,
		uow:        uow,
		recorder:   recorder,
	}
}

// Handle executes the CompleteAppointmentCommand.
func (h *CompleteAppointmentHandler) Handle(ctx context.Context, cmd CompleteAppointmentCommand) (*domain.Appointment, error) {
	if _, err := resolveDoctor(ctx, h.directory, cmd.DoctorID); err != nil {
		return nil, err
	}

	appointment, err := sharedApplication.WithUnitOfWorkResult(ctx, h.uow, func(txCtx context.Context) (*domain.Appointment, error) {
		appointment, err := loadAppointment(txCtx, h.repo, cmd.AppointmentID)
		if err != nil {
			return nil, err
		}

		if err := appointment.Complete(cmd.DoctorID); err != nil {
			return nil, err
		}
		if err := h.repo.SaveTransition(txCtx, appointment, domain.StatusInProgress); err != nil {
			return nil, err
		}
		if err := saveEvents(txCtx, h.outboxRepo, appointment, cmd.DoctorID); err != nil {
			return nil, err
		}
		return appointment, nil
	})
	if err != nil {
		return nil, err
	}

	h.recorder.transitioned(ctx, appointment, domain.StatusInProgress)
	return appointment, nil
}
