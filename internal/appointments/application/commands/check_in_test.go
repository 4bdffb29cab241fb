package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
	"github.com/inheaven/petservice/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var queueStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func timeAt(minutes int) time.Time {
	return queueStart.Add(time.Duration(minutes) * time.Minute)
}

func TestCheckInHandler_Handle(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, "tx", "transaction")

	t.Run("checks in scheduled appointment", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		metrics := observability.NewInMemoryMetrics()
		appointment := stored(domain.StatusScheduled, nil, nil)

		uow.On("Begin", ctx).Return(txCtx, nil)
		repo.On("FindByID", txCtx, appointment.ID()).Return(appointment, nil)
		repo.On("SaveTransition", txCtx, appointment, domain.StatusScheduled).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.MatchedBy(func(msgs []*outbox.Message) bool {
			return len(msgs) == 1 && msgs[0].RoutingKey == domain.RoutingKeyCheckedIn
		})).Return(nil)
		uow.On("Commit", txCtx).Return(nil)

		handler := NewCheckInHandler(repo, outboxRepo, uow, testRecorder(metrics))
		handler.now = func() time.Time { return timeAt(5) }

		checkedIn, err := handler.Handle(ctx, CheckInCommand{AppointmentID: appointment.ID()})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCheckedIn, checkedIn.Status())
		assert.Equal(t, timeAt(5), *checkedIn.CheckInTime())
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricAppointmentTransitions, observability.T("to", "CHECKED_IN")))
		repo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("second check-in is rejected", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		uow := new(mockUnitOfWork)
		checkIn := timeAt(0)
		appointment := stored(domain.StatusCheckedIn, &checkIn, nil)

		uow.On("Begin", ctx).Return(txCtx, nil)
		repo.On("FindByID", txCtx, appointment.ID()).Return(appointment, nil)
		uow.On("Rollback", txCtx).Return(nil)

		handler := NewCheckInHandler(repo, new(mockOutboxRepo), uow, testRecorder(nil))
		_, err := handler.Handle(ctx, CheckInCommand{AppointmentID: appointment.ID()})

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		assert.Equal(t, domain.StatusCheckedIn, appointment.Status())
		assert.Equal(t, checkIn, *appointment.CheckInTime())
		repo.AssertNotCalled(t, "SaveTransition", mock.Anything, mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("lost swap surfaces conflict", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		uow := new(mockUnitOfWork)
		appointment := stored(domain.StatusScheduled, nil, nil)

		uow.On("Begin", ctx).Return(txCtx, nil)
		repo.On("FindByID", txCtx, appointment.ID()).Return(appointment, nil)
		repo.On("SaveTransition", txCtx, appointment, domain.StatusScheduled).Return(sharedDomain.ErrConflict)
		uow.On("Rollback", txCtx).Return(nil)

		handler := NewCheckInHandler(repo, new(mockOutboxRepo), uow, testRecorder(nil))
		_, err := handler.Handle(ctx, CheckInCommand{AppointmentID: appointment.ID()})

		assert.ErrorIs(t, err, sharedDomain.ErrConflict)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		uow := new(mockUnitOfWork)
		id := uuid.New()

		uow.On("Begin", ctx).Return(txCtx, nil)
		repo.On("FindByID", txCtx, id).Return(nil, nil)
		uow.On("Rollback", txCtx).Return(nil)

		handler := NewCheckInHandler(repo, new(mockOutboxRepo), uow, testRecorder(nil))
		_, err := handler.Handle(ctx, CheckInCommand{AppointmentID: id})

		assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
	})
}
