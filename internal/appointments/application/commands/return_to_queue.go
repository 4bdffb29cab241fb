package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
)

// ReturnToQueueCommand hands an in-progress appointment back to the queue.
type ReturnToQueueCommand struct {
	AppointmentID uuid.UUID
}

// ReturnToQueueHandler handles the ReturnToQueueCommand.
type ReturnToQueueHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	recorder   Recorder
	now        func() time.Time
}

// NewReturnToQueueHandler creates a new ReturnToQueueHandler.
func NewReturnToQueueHandler(repo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, recorder Recorder) *ReturnToQueueHandler {
	return &ReturnToQueueHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
		recorder:   recorder,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle executes the ReturnToQueueCommand.
func (h *ReturnToQueueHandler) Handle(ctx context.Context, cmd ReturnToQueueCommand) (*domain.Appointment, error) {
	appointment, err := sharedApplication.WithUnitOfWorkResult(ctx, h.uow, func(txCtx context.Context) (*domain.Appointment, error) {
		appointment, err := loadAppointment(txCtx, h.repo, cmd.AppointmentID)
		if err != nil {
			return nil, err
		}

		actor := appointment.OwnerID()
		if doctorID := appointment.AssignedDoctorID(); doctorID != nil {
			actor = *doctorID
		}

		if err := appointment.ReturnToQueue(h.now()); err != nil {
			return nil, err
		}
		if err := h.repo.SaveTransition(txCtx, appointment, domain.StatusInProgress); err != nil {
			return nil, err
		}
		if err := saveEvents(txCtx, h.outboxRepo, appointment, actor); err != nil {
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
