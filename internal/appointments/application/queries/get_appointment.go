package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
)

// GetAppointmentQuery contains the parameters for getting a single appointment.
type GetAppointmentQuery struct {
	AppointmentID uuid.UUID
}

// GetAppointmentHandler handles the GetAppointmentQuery.
type GetAppointmentHandler struct {
	repo      domain.Repository
	describer *Describer
}

// NewGetAppointmentHandler creates a new GetAppointmentHandler.
func NewGetAppointmentHandler(repo domain.Repository, directory domain.UserDirectory) *GetAppointmentHandler {
	return &GetAppointmentHandler{repo: repo, describer: NewDescriber(directory)}
}

// Handle executes the GetAppointmentQuery.
func (h *GetAppointmentHandler) Handle(ctx context.Context, query GetAppointmentQuery) (*AppointmentDTO, error) {
	appointment, err := h.repo.FindByID(ctx, query.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAppointmentNotFound, query.AppointmentID)
	}

	dto, err := h.describer.Describe(ctx, appointment)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}
