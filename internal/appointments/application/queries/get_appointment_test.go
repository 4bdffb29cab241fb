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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockAppointmentRepo is a mock implementation of domain.Repository.
type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Save(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAppointmentRepo) SaveTransition(ctx context.Context, a *domain.Appointment, expected domain.Status) error {
	args := m.Called(ctx, a, expected)
	return args.Error(0)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID, expected domain.Status) error {
	args := m.Called(ctx, id, expected)
	return args.Error(0)
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Appointment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) FindByNameLike(ctx context.Context, query string, status *domain.Status) ([]*domain.Appointment, error) {
	args := m.Called(ctx, query, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) FindAll(ctx context.Context) ([]*domain.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Appointment, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

// mockDirectory is a mock implementation of domain.UserDirectory.
type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) ResolveUser(ctx context.Context, id uuid.UUID) (domain.UserRef, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.UserRef), args.Error(1)
}

// named answers every lookup with the same display name.
func (m *mockDirectory) named(name string) *mockDirectory {
	m.On("ResolveUser", mock.Anything, mock.Anything).Return(domain.UserRef{DisplayName: name}, nil)
	return m
}

func appointmentFor(ownerID uuid.UUID, name string, status domain.Status, checkIn *time.Time) *domain.Appointment {
	return domain.RehydrateAppointment(domain.AppointmentState{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Details: domain.BookingDetails{
			Name:            name,
			PetName:         "Rex",
			PetType:         "dog",
			HealthStatus:    "healthy",
			AppointmentTime: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		CheckInTime: checkIn,
		Status:      status,
	})
}

func TestGetAppointmentHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("returns dto", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		a := appointmentFor(uuid.New(), "Jane Doe", domain.StatusScheduled, nil)
		repo.On("FindByID", ctx, a.ID()).Return(a, nil)

		dto, err := NewGetAppointmentHandler(repo, new(mockDirectory).named("Jane Doe")).Handle(ctx, GetAppointmentQuery{AppointmentID: a.ID()})

		require.NoError(t, err)
		assert.Equal(t, a.ID(), dto.ID)
		assert.Equal(t, "Jane Doe", dto.Name)
		assert.Equal(t, "Jane Doe", dto.UserName)
		assert.Equal(t, "SCHEDULED", dto.Status)
		assert.Nil(t, dto.CheckInTime)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, nil)

		dto, err := NewGetAppointmentHandler(repo, new(mockDirectory)).Handle(ctx, GetAppointmentQuery{AppointmentID: id})

		assert.Nil(t, dto)
		assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
		assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, errors.New("db down"))

		_, err := NewGetAppointmentHandler(repo, new(mockDirectory)).Handle(ctx, GetAppointmentQuery{AppointmentID: id})

		assert.EqualError(t, err, "db down")
	})
}
