package queries

import (
	"context"
	"strings"

	"github.com/inheaven/petservice/internal/appointments/domain"
)

// SearchAppointmentsQuery matches a case-insensitive substring of the
// booking name. A nil Status searches every status.
type SearchAppointmentsQuery struct {
	Name   string
	Status *domain.Status
}

// SearchAppointmentsHandler handles the SearchAppointmentsQuery.
type SearchAppointmentsHandler struct {
	repo      domain.Repository
	describer *Describer
}

// NewSearchAppointmentsHandler creates a new SearchAppointmentsHandler.
func NewSearchAppointmentsHandler(repo domain.Repository, directory domain.UserDirectory) *SearchAppointmentsHandler {
	return &SearchAppointmentsHandler{repo: repo, describer: NewDescriber(directory)}
}

// Handle executes the SearchAppointmentsQuery.
func (h *SearchAppointmentsHandler) Handle(ctx context.Context, query SearchAppointmentsQuery) ([]AppointmentDTO, error) {
	name := strings.TrimSpace(query.Name)
	if name == "" {
		return nil, domain.ErrBlankSearch
	}

	appointments, err := h.repo.FindByNameLike(ctx, name, query.Status)
	if err != nil {
		return nil, err
	}
	return h.describer.DescribeAll(ctx, appointments)
}
