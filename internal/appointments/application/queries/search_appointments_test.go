package queries

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchAppointmentsHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("trims query and searches all statuses", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("FindByNameLike", ctx, "jane", (*domain.Status)(nil)).Return([]*domain.Appointment{
			appointmentFor(uuid.New(), "Jane Doe", domain.StatusScheduled, nil),
		}, nil)

		dtos, err := NewSearchAppointmentsHandler(repo, new(mockDirectory).named("Jane Doe")).Handle(ctx, SearchAppointmentsQuery{Name: "  jane "})

		require.NoError(t, err)
		assert.Len(t, dtos, 1)
		repo.AssertExpectations(t)
	})

	t.Run("passes status filter", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		status := domain.StatusCheckedIn
		repo.On("FindByNameLike", ctx, "doe", mock.MatchedBy(func(s *domain.Status) bool {
			return s != nil && *s == domain.StatusCheckedIn
		})).Return([]*domain.Appointment{}, nil)

		dtos, err := NewSearchAppointmentsHandler(repo, new(mockDirectory)).Handle(ctx, SearchAppointmentsQuery{Name: "doe", Status: &status})

		require.NoError(t, err)
		assert.Empty(t, dtos)
		repo.AssertExpectations(t)
	})

	for _, blank := range []string{"", "   ", "\t\n"} {
		t.Run("blank query is invalid input", func(t *testing.T) {
			repo := new(mockAppointmentRepo)

			_, err := NewSearchAppointmentsHandler(repo, new(mockDirectory)).Handle(ctx, SearchAppointmentsQuery{Name: blank})

			assert.ErrorIs(t, err, domain.ErrBlankSearch)
			assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)
			repo.AssertNotCalled(t, "FindByNameLike", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
