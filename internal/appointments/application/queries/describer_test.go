package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriber_DescribeAll(t *testing.T) {
	ctx := context.Background()
	checkIn := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("fills owner and doctor names", func(t *testing.T) {
		ownerID := uuid.New()
		preferredID := uuid.New()
		assignedID := uuid.New()
		a := domain.RehydrateAppointment(domain.AppointmentState{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Details: domain.BookingDetails{
				Name:              "Nguyễn Văn Đức",
				PetName:           "Milo",
				PetType:           "cat",
				HealthStatus:      "sneezing",
				AppointmentTime:   checkIn,
				PreferredDoctorID: &preferredID,
			},
			CheckInTime:      &checkIn,
			Status:           domain.StatusInProgress,
			AssignedDoctorID: &assignedID,
		})
		second := appointmentFor(ownerID, "Nguyễn Văn Đức", domain.StatusScheduled, nil)

		directory := new(mockDirectory)
		directory.On("ResolveUser", ctx, ownerID).Return(domain.UserRef{ID: ownerID, DisplayName: "Đức Nguyễn"}, nil).Once()
		directory.On("ResolveUser", ctx, preferredID).Return(domain.UserRef{ID: preferredID, DisplayName: "Dr Jones", IsDoctor: true}, nil).Once()
		directory.On("ResolveUser", ctx, assignedID).Return(domain.UserRef{ID: assignedID, DisplayName: "Dr Smith", IsDoctor: true}, nil).Once()

		dtos, err := NewDescriber(directory).DescribeAll(ctx, []*domain.Appointment{a, second})

		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, "Đức Nguyễn", dtos[0].UserName)
		assert.Equal(t, "Dr Jones", dtos[0].PreferredDoctorName)
		assert.Equal(t, "Dr Smith", dtos[0].AssignedDoctorName)
		assert.Equal(t, "Đức Nguyễn", dtos[1].UserName)
		assert.Empty(t, dtos[1].PreferredDoctorName)
		assert.Empty(t, dtos[1].AssignedDoctorName)
		directory.AssertExpectations(t)
	})

	t.Run("missing user leaves name empty", func(t *testing.T) {
		ownerID := uuid.New()
		directory := new(mockDirectory)
		directory.On("ResolveUser", ctx, ownerID).Return(domain.UserRef{}, sharedDomain.ErrNotFound)

		dto, err := NewDescriber(directory).Describe(ctx, appointmentFor(ownerID, "Jane", domain.StatusScheduled, nil))

		require.NoError(t, err)
		assert.Empty(t, dto.UserName)
		assert.Equal(t, "Jane", dto.Name)
	})

	t.Run("directory failure is returned", func(t *testing.T) {
		ownerID := uuid.New()
		directory := new(mockDirectory)
		directory.On("ResolveUser", ctx, ownerID).Return(domain.UserRef{}, errors.New("redis timeout"))

		_, err := NewDescriber(directory).Describe(ctx, appointmentFor(ownerID, "Jane", domain.StatusScheduled, nil))

		assert.EqualError(t, err, "redis timeout")
	})
}
