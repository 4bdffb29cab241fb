package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
	"github.com/inheaven/petservice/pkg/observability"
)

// Recorder logs and counts appointment transitions.
type Recorder struct {
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewRecorder creates a Recorder. Nil arguments fall back to the default
// logger and to discarding metrics.
func NewRecorder(logger *slog.Logger, metrics observability.Metrics) Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return Recorder{logger: logger, metrics: metrics}
}

func (r Recorder) transitioned(ctx context.Context, a *domain.Appointment, from domain.Status) {
	attrs := []any{
		"appointment_id", a.ID(),
		"from", from,
		"status", a.Status(),
	}
	if doctorID := a.AssignedDoctorID(); doctorID != nil {
		attrs = append(attrs, "doctor_id", *doctorID)
	}
	r.logger.InfoContext(ctx, "appointment transitioned", attrs...)
	r.metrics.Counter(observability.MetricAppointmentTransitions, 1, observability.T("to", a.Status().String()))
}

func loadAppointment(ctx context.Context, repo domain.Repository, id uuid.UUID) (*domain.Appointment, error) {
	a, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, appointmentNotFound(id)
	}
	return a, nil
}

func appointmentNotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", domain.ErrAppointmentNotFound, id)
}

// saveEvents writes the pending events of a to the outbox inside the unit of
// work carried by ctx.
func saveEvents(ctx context.Context, outboxRepo outbox.Repository, a *domain.Appointment, userID uuid.UUID) error {
	events := a.DomainEvents()
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, userID))

	msgs, err := outbox.NewMessages(events)
	if err != nil {
		return err
	}
	if err := outboxRepo.SaveBatch(ctx, msgs); err != nil {
		return err
	}
	a.ClearDomainEvents()
	return nil
}

// resolveDoctor returns the user behind doctorID, who must hold the DOCTOR
// role.
func resolveDoctor(ctx context.Context, directory domain.UserDirectory, doctorID uuid.UUID) (domain.UserRef, error) {
	ref, err := directory.ResolveUser(ctx, doctorID)
	if err != nil {
		if errors.Is(err, sharedDomain.ErrNotFound) {
			return domain.UserRef{}, fmt.Errorf("%w: %s", domain.ErrDoctorNotFound, doctorID)
		}
		return domain.UserRef{}, err
	}
	if !ref.IsDoctor {
		return domain.UserRef{}, fmt.Errorf("%w: %s", domain.ErrNotADoctor, ref.DisplayName)
	}
	return ref, nil
}
