package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment persistence.
//
// FindByID returns nil, nil when the appointment does not exist. List
// methods return appointments ordered by appointment time, newest first,
// except FindByStatus which returns queue order.
type Repository interface {
	// Save inserts a new appointment.
	Save(ctx context.Context, appointment *Appointment) error
	// SaveTransition writes the appointment only if its stored status is
	// still expected; otherwise it returns sharedDomain.ErrConflict.
	SaveTransition(ctx context.Context, appointment *Appointment, expected Status) error
	// Delete removes the appointment only if its stored status is expected.
	Delete(ctx context.Context, id uuid.UUID, expected Status) error
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// FindByStatus orders by check-in time, then id.
	FindByStatus(ctx context.Context, status Status) ([]*Appointment, error)
	// FindByNameLike matches a case-insensitive substring of the booking
	// name. A nil status matches every status.
	FindByNameLike(ctx context.Context, query string, status *Status) ([]*Appointment, error)
	FindAll(ctx context.Context) ([]*Appointment, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Appointment, error)
}
