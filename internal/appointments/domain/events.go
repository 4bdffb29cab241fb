package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
)

const aggregateType = "Appointment"

// Routing keys for appointment events.
const (
	RoutingKeyBooked          = "appointments.appointment.booked"
	RoutingKeyUpdated         = "appointments.appointment.updated"
	RoutingKeyCheckedIn       = "appointments.appointment.checked_in"
	RoutingKeyDispatched      = "appointments.appointment.dispatched"
	RoutingKeyCompleted       = "appointments.appointment.completed"
	RoutingKeyReturnedToQueue = "appointments.appointment.returned_to_queue"
	RoutingKeyNoteUpdated     = "appointments.appointment.note_updated"
	RoutingKeyCancelled       = "appointments.appointment.cancelled"
	RoutingKeyDeleted         = "appointments.appointment.deleted"
)

// AppointmentBooked is emitted when a customer books a visit.
type AppointmentBooked struct {
	sharedDomain.BaseEvent
	AppointmentID     uuid.UUID  `json:"appointment_id"`
	OwnerID           uuid.UUID  `json:"owner_id"`
	PetName           string     `json:"pet_name"`
	AppointmentTime   time.Time  `json:"appointment_time"`
	PreferredDoctorID *uuid.UUID `json:"preferred_doctor_id,omitempty"`
}

// NewAppointmentBooked creates an AppointmentBooked event.
func NewAppointmentBooked(a *Appointment) *AppointmentBooked {
	return &AppointmentBooked{
		BaseEvent:         sharedDomain.NewBaseEvent(a.ID(), aggregateType, RoutingKeyBooked),
		AppointmentID:     a.ID(),
		OwnerID:           a.OwnerID(),
		PetName:           a.PetName(),
		AppointmentTime:   a.AppointmentTime(),
		PreferredDoctorID: copyID(a.PreferredDoctorID()),
	}
}

// AppointmentUpdated is emitted when booking details change.
type AppointmentUpdated struct {
	sharedDomain.BaseEvent
	AppointmentID   uuid.UUID `json:"appointment_id"`
	AppointmentTime time.Time `json:"appointment_time"`
}

// NewAppointmentUpdated creates an AppointmentUpdated event.
func NewAppointmentUpdated(a *Appointment) *AppointmentUpdated {
	return &AppointmentUpdated{
		BaseEvent:       sharedDomain.NewBaseEvent(a.ID(), aggregateType, RoutingKeyUpdated),
		AppointmentID:   a.ID(),
		AppointmentTime: a.AppointmentTime(),
	}
}

// AppointmentCheckedIn is emitted when a pet arrives at the front desk.
type AppointmentCheckedIn struct {
	sharedDomain.BaseEvent
	AppointmentID uuid.UUID `json:"appointment_id"`
	CheckInTime   time.Time `json:"check_in_time"`
}

// NewAppointmentCheckedIn creates an AppointmentCheckedIn event.
func NewAppointmentCheckedIn(a *Appointment) *AppointmentCheckedIn {
	return &AppointmentCheckedIn{
		BaseEvent:     sharedDomain.NewBaseEvent(a.ID(), aggregateType, RoutingKeyCheckedIn),
		AppointmentID: a.ID(),
		CheckInTime:   *a.CheckInTime(),
	}
}

// AppointmentDispatched is emitted when a doctor takes the appointment.
type AppointmentDispatched struct {
	sharedDomain.BaseEvent
	AppointmentID uuid.UUID `json:"appointment_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
}

// NewAppointmentDispatched creates an AppointmentDispatched event.
func NewAppointmentDispatched(a *Appointment) *AppointmentDispatched {
	return &AppointmentDispatched{
		BaseEvent:     sharedDomain.NewBaseEvent(a.ID(), aggregateType, RoutingKeyDispatched),
		AppointmentID: a.ID(),
		DoctorID:      *a.AssignedDoctorID(),
	}
}

// AppointmentCompleted is emitted when the visit is finished.
type AppointmentCompleted struct {
	sharedDomain.BaseEvent
	AppointmentID uuid.UUID `json:"appointment_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
}

// NewAppointmentCompleted creates an AppointmentCompleted event.
func NewAppointmentCompleted(a *Appointment) *AppointmentCompleted {
	return &AppointmentCompleted{
		BaseEvent:     sharedDomain.NewBaseEvent(a.ID(), aggregateType, RoutingKeyCompleted),
		AppointmentID: a.ID(),
		DoctorID:      *a.AssignedDoctorID(),
	}
}

// AppointmentReturnedToQueue is emitted when a doctor hands the pet back.
type AppointmentReturnedToQueue struct {
	sharedDomain.BaseEvent
	AppointmentID    uuid.UUID  `json:"appointment_id"`
	PreviousDoctorID *uuid.UUID `json:"previous_doctor_id,omitempty"`
	CheckInTime      time.Time  `json:"check_in_time"`
}

// NewAppointmentReturnedToQueue creates an AppointmentReturnedToQueue event.
func NewAppointmentReturnedToQueue(a *Appointment, previous *uuid.UUID) *AppointmentReturnedToQueue {
	return &AppointmentReturnedToQueue{
		BaseEvent:        sharedDomain.NewBaseEvent(a.ID(), aggregateType, RoutingKeyReturnedToQueue),
		AppointmentID:    a.ID(),
		PreviousDoctorID: copyID(previous),
		CheckInTime:      *a.CheckInTime(),
	}
}

// AppointmentNoteUpdated is emitted when the visit note changes.
type AppointmentNoteUpdated struct {
	sharedDomain.BaseEvent
	AppointmentID uuid.UUID `json:"appointment_id"`
}

// NewAppointmentNoteUpdated creates an AppointmentNoteUpdated event.
func NewAppointmentNoteUpdated(a *Appointment) *AppointmentNoteUpdated {
	return &AppointmentNoteUpdated{
		BaseEvent:     sharedDomain.NewBaseEvent(a.ID(), aggregateType, RoutingKeyNoteUpdated),
		AppointmentID: a.ID(),
	}
}

// AppointmentCancelled is emitted when an unseen appointment is cancelled.
type AppointmentCancelled struct {
	sharedDomain.BaseEvent
	AppointmentID uuid.UUID `json:"appointment_id"`
}

// NewAppointmentCancelled creates an AppointmentCancelled event.
func NewAppointmentCancelled(a *Appointment) *AppointmentCancelled {
	return &AppointmentCancelled{
		BaseEvent:     sharedDomain.NewBaseEvent(a.ID(), aggregateType, RoutingKeyCancelled),
		AppointmentID: a.ID(),
	}
}

// AppointmentDeleted is emitted when a scheduled appointment is removed.
type AppointmentDeleted struct {
	sharedDomain.BaseEvent
	AppointmentID uuid.UUID `json:"appointment_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
}

// NewAppointmentDeleted creates an AppointmentDeleted event.
func NewAppointmentDeleted(a *Appointment) *AppointmentDeleted {
	return &AppointmentDeleted{
		BaseEvent:     sharedDomain.NewBaseEvent(a.ID(), aggregateType, RoutingKeyDeleted),
		AppointmentID: a.ID(),
		OwnerID:       a.OwnerID(),
	}
}
