package commands

import (
	"context"
	"testing"

	"github.com/inheaven/petservice/internal/appointments/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelAppointmentHandler_Handle(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, "tx", "transaction")

	t.Run("cancels checked-in appointment with swap on previous status", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)

		checkIn := timeAt(0)
		appointment := stored(domain.StatusCheckedIn, &checkIn, nil)

		uow.On("Begin", ctx).Return(txCtx, nil)
		repo.On("FindByID", txCtx, appointment.ID()).Return(appointment, nil)
		repo.On("SaveTransition", txCtx, appointment, domain.StatusCheckedIn).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.Anything).Return(nil)
		uow.On("Commit", txCtx).Return(nil)

		handler := NewCancelAppointmentHandler(repo, outboxRepo, uow, testRecorder(nil))
		cancelled, err := handler.Handle(ctx, CancelAppointmentCommand{AppointmentID: appointment.ID()})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, cancelled.Status())
		repo.AssertExpectations(t)
	})

	t.Run("cannot cancel completed visit", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		uow := new(mockUnitOfWork)
		checkIn := timeAt(0)
		appointment := stored(domain.StatusCompleted, &checkIn, nil)

		uow.On("Begin", ctx).Return(txCtx, nil)
		repo.On("FindByID", txCtx, appointment.ID()).Return(appointment, nil)
		uow.On("Rollback", txCtx).Return(nil)

		handler := NewCancelAppointmentHandler(repo, new(mockOutboxRepo), uow, testRecorder(nil))
		_, err := handler.Handle(ctx, CancelAppointmentCommand{AppointmentID: appointment.ID()})

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		assert.Equal(t, domain.StatusCompleted, appointment.Status())
	})
}
