package queries

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
)

// Describer converts appointments to DTOs with the display names of the
// booking user and both doctors filled in.
type Describer struct {
	directory domain.UserDirectory
}

// NewDescriber creates a Describer backed by directory.
func NewDescriber(directory domain.UserDirectory) *Describer {
	return &Describer{directory: directory}
}

// Describe converts a single appointment.
func (d *Describer) Describe(ctx context.Context, a *domain.Appointment) (AppointmentDTO, error) {
	dtos, err := d.DescribeAll(ctx, []*domain.Appointment{a})
	if err != nil {
		return AppointmentDTO{}, err
	}
	return dtos[0], nil
}

// DescribeAll converts appointments, resolving each distinct user once.
// Users missing from the directory get an empty name.
func (d *Describer) DescribeAll(ctx context.Context, appointments []*domain.Appointment) ([]AppointmentDTO, error) {
	names := make(map[uuid.UUID]string)
	lookup := func(id *uuid.UUID) (string, error) {
		if id == nil {
			return "", nil
		}
		if name, ok := names[*id]; ok {
			return name, nil
		}
		ref, err := d.directory.ResolveUser(ctx, *id)
		if err != nil && !errors.Is(err, sharedDomain.ErrNotFound) {
			return "", err
		}
		names[*id] = ref.DisplayName
		return ref.DisplayName, nil
	}

	dtos := make([]AppointmentDTO, 0, len(appointments))
	for _, a := range appointments {
		dto := ToAppointmentDTO(a)
		ownerID := a.OwnerID()
		var err error
		if dto.UserName, err = lookup(&ownerID); err != nil {
			return nil, err
		}
		if dto.PreferredDoctorName, err = lookup(a.PreferredDoctorID()); err != nil {
			return nil, err
		}
		if dto.AssignedDoctorName, err = lookup(a.AssignedDoctorID()); err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}
