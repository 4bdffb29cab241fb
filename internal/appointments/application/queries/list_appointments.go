package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
)

// ListAppointmentsQuery lists every appointment, newest appointment time
// first. A non-nil OwnerID restricts the list to that owner.
type ListAppointmentsQuery struct {
	OwnerID *uuid.UUID
}

// ListAppointmentsHandler handles the ListAppointmentsQuery.
type ListAppointmentsHandler struct {
	repo      domain.Repository
	directory domain.UserDirectory
	describer *Describer
}

// NewListAppointmentsHandler creates a new ListAppointmentsHandler.
func NewListAppointmentsHandler(repo domain.Repository, directory domain.UserDirectory) *ListAppointmentsHandler {
	return &ListAppointmentsHandler{repo: repo, directory: directory, describer: NewDescriber(directory)}
}

// Handle executes the ListAppointmentsQuery.
func (h *ListAppointmentsHandler) Handle(ctx context.Context, query ListAppointmentsQuery) ([]AppointmentDTO, error) {
	if query.OwnerID == nil {
		appointments, err := h.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return h.describer.DescribeAll(ctx, appointments)
	}

	if _, err := h.directory.ResolveUser(ctx, *query.OwnerID); err != nil {
		if errors.Is(err, sharedDomain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, *query.OwnerID)
		}
		return nil, err
	}

	appointments, err := h.repo.FindByOwner(ctx, *query.OwnerID)
	if err != nil {
		return nil, err
	}
	return h.describer.DescribeAll(ctx, appointments)
}
