package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
)

// CancelAppointmentCommand cancels an appointment that has not been seen.
type CancelAppointmentCommand struct {
	AppointmentID uuid.UUID
}

// CancelAppointmentHandler handles the CancelAppointmentCommand.
type CancelAppointmentHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	recorder   Recorder
}

// NewCancelAppointmentHandler creates a new CancelAppointmentHandler.
func NewCancelAppointmentHandler(repo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, recorder Recorder) *CancelAppointmentHandler {
	return &CancelAppointmentHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
		recorder:   recorder,
	}
}

// Handle executes the CancelAppointmentCommand.
func (h *CancelAppointmentHandler) Handle(ctx context.Context, cmd CancelAppointmentCommand) (*domain.Appointment, error) {
	var previous domain.Status
	appointment, err := sharedApplication.WithUnitOfWorkResult(ctx, h.uow, func(txCtx context.Context) (*domain.Appointment, error) {
		appointment, err := loadAppointment(txCtx, h.repo, cmd.AppointmentID)
		if err != nil {
			return nil, err
		}

		previous = appointment.Status()
		if err := appointment.Cancel(); err != nil {
			return nil, err
		}
		if err := h.repo.SaveTransition(txCtx, appointment, previous); err != nil {
			return nil, err
		}
		if err := saveEvents(txCtx, h.outboxRepo, appointment, appointment.OwnerID()); err != nil {
			return nil, err
		}
		return appointment, nil
	})
	if err != nil {
		return nil, err
	}

	h.recorder.transitioned(ctx, appointment, previous)
	return appointment, nil
}
