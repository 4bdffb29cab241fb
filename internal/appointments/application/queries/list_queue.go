package queries

import (
	"context"

	"github.com/inheaven/petservice/internal/appointments/domain"
)

// QueueEntryDTO is an appointment waiting to be seen.
type QueueEntryDTO struct {
	Position int `json:"position"`
	AppointmentDTO
}

// ListQueueQuery lists the checked-in appointments in the order doctors will
// be offered them.
type ListQueueQuery struct{}

// ListQueueHandler handles the ListQueueQuery.
type ListQueueHandler struct {
	repo      domain.Repository
	describer *Describer
}

// NewListQueueHandler creates a new ListQueueHandler.
func NewListQueueHandler(repo domain.Repository, directory domain.UserDirectory) *ListQueueHandler {
	return &ListQueueHandler{repo: repo, describer: NewDescriber(directory)}
}

// Handle executes the ListQueueQuery.
func (h *ListQueueHandler) Handle(ctx context.Context, _ ListQueueQuery) ([]QueueEntryDTO, error) {
	queue, err := h.repo.FindByStatus(ctx, domain.StatusCheckedIn)
	if err != nil {
		return nil, err
	}
	domain.SortQueue(queue)

	dtos, err := h.describer.DescribeAll(ctx, queue)
	if err != nil {
		return nil, err
	}
	entries := make([]QueueEntryDTO, 0, len(dtos))
	for i, dto := range dtos {
		entries = append(entries, QueueEntryDTO{Position: i + 1, AppointmentDTO: dto})
	}
	return entries, nil
}
