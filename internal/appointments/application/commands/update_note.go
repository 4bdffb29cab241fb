package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
)

// UpdateNoteCommand replaces the visit note of an in-progress appointment.
type UpdateNoteCommand struct {
	AppointmentID uuid.UUID
	Note          string
}

// UpdateNoteHandler handles the UpdateNoteCommand.
type UpdateNoteHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateNoteHandler creates a new UpdateNoteHandler.
func NewUpdateNoteHandler(repo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateNoteHandler {
	return &UpdateNoteHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the UpdateNoteCommand.
func (h *UpdateNoteHandler) Handle(ctx context.Context, cmd UpdateNoteCommand) (*domain.Appointment, error) {
	return sharedApplication.WithUnitOfWorkResult(ctx, h.uow, func(txCtx context.Context) (*domain.Appointment, error) {
		appointment, err := loadAppointment(txCtx, h.repo, cmd.AppointmentID)
		if err != nil {
			return nil, err
		}

		if err := appointment.UpdateNote(cmd.Note); err != nil {
			return nil, err
		}
		if err := h.repo.SaveTransition(txCtx, appointment, domain.StatusInProgress); err != nil {
			return nil, err
		}

		actor := appointment.OwnerID()
		if doctorID := appointment.AssignedDoctorID(); doctorID != nil {
			actor = *doctorID
		}
		if err := saveEvents(txCtx, h.outboxRepo, appointment, actor); err != nil {
			return nil, err
		}
		return appointment, nil
	})
}
