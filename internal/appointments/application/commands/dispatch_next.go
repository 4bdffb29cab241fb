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
	"github.com/inheaven/petservice/pkg/observability"
)

// DefaultDispatchAttempts bounds how often a dispatch is retried after
// losing the status swap to a concurrent dispatcher.
const DefaultDispatchAttempts = 3

// DispatchNextCommand asks for the next pet a doctor should see.
type DispatchNextCommand struct {
	DoctorID uuid.UUID
}

// DispatchNextHandler handles the DispatchNextCommand.
type DispatchNextHandler struct {
	repo        domain.Repository
	outboxRepo  outbox.Repository
	directory   domain.UserDirectory
	uow         sharedApplication.UnitOfWork
	recorder    Recorder
	maxAttempts int
}

// NewDispatchNextHandler creates a new DispatchNextHandler. maxAttempts
// below one uses DefaultDispatchAttempts.
func NewDispatchNextHandler(
	repo domain.Repository,
	outboxRepo outbox.Repository,
	directory domain.UserDirectory,
	uow sharedApplication.UnitOfWork,
	recorder Recorder,
	maxAttempts int,
) *DispatchNextHandler {
	if maxAttempts < 1 {
		maxAttempts = DefaultDispatchAttempts
	}
	return &DispatchNextHandler{
		repo:        repo,
		outboxRepo:  outboxRepo,
		directory:   directory,
		uow:         uow,
		recorder:    recorder,
		maxAttempts: maxAttempts,
	}
}

// Handle executes the DispatchNextCommand.
func (h *DispatchNextHandler) Handle(ctx context.Context, cmd DispatchNextCommand) (*domain.Appointment, error) {
	if _, err := resolveDoctor(ctx, h.directory, cmd.DoctorID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		appointment, err := sharedApplication.WithUnitOfWorkResult(ctx, h.uow, func(txCtx context.Context) (*domain.Appointment, error) {
			return h.dispatch(txCtx, cmd.DoctorID)
		})
		switch {
		case err == nil:
			h.recorder.transitioned(ctx, appointment, domain.StatusCheckedIn)
			return appointment, nil
		case errors.Is(err, sharedDomain.ErrConflict):
			h.recorder.metrics.Counter(observability.MetricDispatchConflicts, 1)
			h.recorder.logger.WarnContext(ctx, "dispatch lost status swap, retrying",
				"doctor_id", cmd.DoctorID,
				"attempt", attempt,
			)
			continue
		case errors.Is(err, domain.ErrQueueEmpty):
			h.recorder.metrics.Counter(observability.MetricDispatchEmpty, 1, observability.T("kind", "queue_empty"))
			return nil, err
		case errors.Is(err, domain.ErrNoMatchingAppointment):
			h.recorder.metrics.Counter(observability.MetricDispatchEmpty, 1, observability.T("kind", "no_matching_appointment"))
			return nil, err
		default:
			return nil, err
		}
	}

	return nil, fmt.Errorf("dispatch for doctor %s gave up after %d attempts: %w", cmd.DoctorID, h.maxAttempts, sharedDomain.ErrConflict)
}

func (h *DispatchNextHandler) dispatch(ctx context.Context, doctorID uuid.UUID) (*domain.Appointment, error) {
	queue, err := h.repo.FindByStatus(ctx, domain.StatusCheckedIn)
	if err != nil {
		return nil, err
	}

	next, err := domain.SelectNext(queue, doctorID)
	if err != nil {
		return nil, err
	}

	if err := next.Dispatch(doctorID); err != nil {
		return nil, err
	}
	if err := h.repo.SaveTransition(ctx, next, domain.StatusCheckedIn); err != nil {
		return nil, err
	}
	if err := saveEvents(ctx, h.outboxRepo, next, doctorID); err != nil {
		return nil, err
	}
	return next, nil
}
