package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
)

// CheckInCommand puts an arrived pet in the queue.
type CheckInCommand struct {
	AppointmentID uuid.UUID
}

// CheckInHandler handles the CheckInCommand.
type CheckInHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	recorder   Recorder
	now        func() time.Time
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(repo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, recorder Recorder) *CheckInHandler {
	return &CheckInHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
		recorder:   recorder,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle executes the CheckInCommand.
func (h *CheckInHandler) Handle(ctx context.Context, cmd CheckInCommand) (*domain.Appointment, error) {
	appointment, err := sharedApplication.WithUnitOfWorkResult(ctx, h.uow, func(txCtx context.Context) (*domain.Appointment, error) {
		appointment, err := loadAppointment(txCtx, h.repo, cmd.AppointmentID)
		if err != nil {
			return nil, err
		}

		if err := appointment.CheckIn(h.now()); err != nil {
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
	if err != nil {
		return nil, err
	}

	h.recorder.transitioned(ctx, appointment, domain.StatusScheduled)
	return appointment, nil
}
