package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	"github.com/inheaven/petservice/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dispatchFixture struct {
	repo       *mockAppointmentRepo
	outboxRepo *mockOutboxRepo
	directory  *mockDirectory
	uow        *mockUnitOfWork
	metrics    *observability.InMemoryMetrics
	handler    *DispatchNextHandler
}

func newDispatchFixture(maxAttempts int) *dispatchFixture {
	f := &dispatchFixture{
		repo:       new(mockAppointmentRepo),
		outboxRepo: new(mockOutboxRepo),
		directory:  new(mockDirectory),
		uow:        new(mockUnitOfWork),
		metrics:    observability.NewInMemoryMetrics(),
	}
	f.handler = NewDispatchNextHandler(f.repo, f.outboxRepo, f.directory, f.uow, testRecorder(f.metrics), maxAttempts)
	return f
}

func checkedIn(minutes int, preferred *uuid.UUID) *domain.Appointment {
	at := timeAt(minutes)
	return stored(domain.StatusCheckedIn, &at, preferred)
}

func TestDispatchNextHandler_Handle(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, "tx", "transaction")

	t.Run("skips appointment earmarked for another doctor", func(t *testing.T) {
		f := newDispatchFixture(3)
		drX := uuid.New()
		drY := uuid.New()
		f.directory.doctor(drY)

		b := checkedIn(0, &drX)
		a := checkedIn(1, nil)
		c := checkedIn(2, nil)

		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.repo.On("FindByStatus", txCtx, domain.StatusCheckedIn).Return([]*domain.Appointment{b, a, c}, nil)
		f.repo.On("SaveTransition", txCtx, a, domain.StatusCheckedIn).Return(nil)
		f.outboxRepo.On("SaveBatch", txCtx, mock.Anything).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil)

		next, err := f.handler.Handle(ctx, DispatchNextCommand{DoctorID: drY})

		require.NoError(t, err)
		assert.Equal(t, a.ID(), next.ID())
		assert.Equal(t, domain.StatusInProgress, next.Status())
		assert.Equal(t, drY, *next.AssignedDoctorID())
		assert.Equal(t, domain.StatusCheckedIn, b.Status())
		f.repo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("preferred doctor gets earmarked appointment first", func(t *testing.T) {
		f := newDispatchFixture(3)
		drX := uuid.New()
		f.directory.doctor(drX)

		b := checkedIn(0, &drX)
		a := checkedIn(1, nil)

		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.repo.On("FindByStatus", txCtx, domain.StatusCheckedIn).Return([]*domain.Appointment{a, b}, nil)
		f.repo.On("SaveTransition", txCtx, b, domain.StatusCheckedIn).Return(nil)
		f.outboxRepo.On("SaveBatch", txCtx, mock.Anything).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil)

		next, err := f.handler.Handle(ctx, DispatchNextCommand{DoctorID: drX})

		require.NoError(t, err)
		assert.Equal(t, b.ID(), next.ID())
	})

	t.Run("empty queue", func(t *testing.T) {
		f := newDispatchFixture(3)
		doctorID := uuid.New()
		f.directory.doctor(doctorID)

		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.repo.On("FindByStatus", txCtx, domain.StatusCheckedIn).Return([]*domain.Appointment{}, nil)
		f.uow.On("Rollback", txCtx).Return(nil)

		_, err := f.handler.Handle(ctx, DispatchNextCommand{DoctorID: doctorID})

		assert.ErrorIs(t, err, domain.ErrQueueEmpty)
		assert.ErrorIs(t, err, domain.ErrEmptyQueue)
		assert.Equal(t, int64(1), f.metrics.GetCounter(observability.MetricDispatchEmpty, observability.T("kind", "queue_empty")))
	})

	t.Run("no matching appointment", func(t *testing.T) {
		f := newDispatchFixture(3)
		drX := uuid.New()
		drY := uuid.New()
		f.directory.doctor(drY)

		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.repo.On("FindByStatus", txCtx, domain.StatusCheckedIn).Return([]*domain.Appointment{checkedIn(0, &drX)}, nil)
		f.uow.On("Rollback", txCtx).Return(nil)

		_, err := f.handler.Handle(ctx, DispatchNextCommand{DoctorID: drY})

		assert.ErrorIs(t, err, domain.ErrNoMatchingAppointment)
		assert.NotErrorIs(t, err, domain.ErrQueueEmpty)
		f.repo.AssertNotCalled(t, "SaveTransition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		f := newDispatchFixture(3)
		doctorID := uuid.New()
		f.directory.unknown(doctorID)

		_, err := f.handler.Handle(ctx, DispatchNextCommand{DoctorID: doctorID})

		assert.ErrorIs(t, err, domain.ErrDoctorNotFound)
		assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("customer cannot take the queue", func(t *testing.T) {
		f := newDispatchFixture(3)
		customerID := uuid.New()
		f.directory.customer(customerID)

		_, err := f.handler.Handle(ctx, DispatchNextCommand{DoctorID: customerID})

		assert.ErrorIs(t, err, domain.ErrNotADoctor)
	})

	t.Run("retries with the next head after losing the swap", func(t *testing.T) {
		f := newDispatchFixture(3)
		doctorID := uuid.New()
		f.directory.doctor(doctorID)

		head := checkedIn(0, nil)
		second := checkedIn(1, nil)
		secondAgain := domain.RehydrateAppointment(domain.AppointmentState{
			ID:          second.ID(),
			OwnerID:     second.OwnerID(),
			Details:     second.Details(),
			CheckInTime: second.CheckInTime(),
			Status:      domain.StatusCheckedIn,
		})

		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.repo.On("FindByStatus", txCtx, domain.StatusCheckedIn).Return([]*domain.Appointment{head, second}, nil).Once()
		f.repo.On("SaveTransition", txCtx, head, domain.StatusCheckedIn).Return(sharedDomain.ErrConflict).Once()
		f.uow.On("Rollback", txCtx).Return(nil).Once()
		f.repo.On("FindByStatus", txCtx, domain.StatusCheckedIn).Return([]*domain.Appointment{secondAgain}, nil).Once()
		f.repo.On("SaveTransition", txCtx, secondAgain, domain.StatusCheckedIn).Return(nil).Once()
		f.outboxRepo.On("SaveBatch", txCtx, mock.Anything).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil).Once()

		next, err := f.handler.Handle(ctx, DispatchNextCommand{DoctorID: doctorID})

		require.NoError(t, err)
		assert.Equal(t, second.ID(), next.ID())
		assert.Equal(t, int64(1), f.metrics.GetCounter(observability.MetricDispatchConflicts))
		f.repo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("gives up with conflict after max attempts", func(t *testing.T) {
		f := newDispatchFixture(2)
		doctorID := uuid.New()
		f.directory.doctor(doctorID)

		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.repo.On("FindByStatus", txCtx, domain.StatusCheckedIn).Return([]*domain.Appointment{checkedIn(0, nil)}, nil).Once()
		f.repo.On("FindByStatus", txCtx, domain.StatusCheckedIn).Return([]*domain.Appointment{checkedIn(0, nil)}, nil).Once()
		f.repo.On("SaveTransition", txCtx, mock.Anything, domain.StatusCheckedIn).Return(sharedDomain.ErrConflict)
		f.uow.On("Rollback", txCtx).Return(nil)

		_, err := f.handler.Handle(ctx, DispatchNextCommand{DoctorID: doctorID})

		assert.ErrorIs(t, err, sharedDomain.ErrConflict)
		assert.Equal(t, int64(2), f.metrics.GetCounter(observability.MetricDispatchConflicts))
		f.repo.AssertNumberOfCalls(t, "SaveTransition", 2)
	})

	t.Run("infrastructure failure is not retried", func(t *testing.T) {
		f := newDispatchFixture(3)
		doctorID := uuid.New()
		f.directory.doctor(doctorID)

		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.repo.On("FindByStatus", txCtx, domain.StatusCheckedIn).Return(nil, errors.New("connection reset"))
		f.uow.On("Rollback", txCtx).Return(nil)

		_, err := f.handler.Handle(ctx, DispatchNextCommand{DoctorID: doctorID})

		require.Error(t, err)
		assert.False(t, sharedDomain.IsDomainError(err))
		f.repo.AssertNumberOfCalls(t, "FindByStatus", 1)
	})

	t.Run("defaults attempts", func(t *testing.T) {
		assert.Equal(t, DefaultDispatchAttempts, newDispatchFixture(0).handler.maxAttempts)
	})
}
