package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
)

// BookingDetails are the customer-editable fields of an appointment.
type BookingDetails struct {
	Name            string
	PetName         string
	PetType         string
	Breed           string
	HealthStatus    string
	HealthHistory   string
	Note            string
	AppointmentTime time.Time
	// PreferredDoctorID is optional. On update a nil value keeps the
	// stored preference.
	PreferredDoctorID *uuid.UUID
}

// Validate checks the required booking fields.
func (d BookingDetails) Validate() error {
	required := []struct {
		field, value string
	}{
		{"name", d.Name},
		{"pet name", d.PetName},
		{"pet type", d.PetType},
		{"health status", d.HealthStatus},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return blankField(r.field)
		}
	}
	if d.AppointmentTime.IsZero() {
		return blankField("appointment time")
	}
	return nil
}

// Appointment is a pet visit moving through check-in and dispatch.
type Appointment struct {
	sharedDomain.BaseAggregateRoot
	ownerID           uuid.UUID
	name              string
	petName           string
	petType           string
	breed             string
	healthStatus      string
	healthHistory     string
	note              string
	appointmentTime   time.Time
	checkInTime       *time.Time
	status            Status
	preferredDoctorID *uuid.UUID
	assignedDoctorID  *uuid.UUID
}

// NewAppointment books a SCHEDULED appointment for ownerID.
func NewAppointment(ownerID uuid.UUID, details BookingDetails) (*Appointment, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	a := &Appointment{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		status:            StatusScheduled,
	}
	a.apply(details)
	a.preferredDoctorID = copyID(details.PreferredDoctorID)

	a.AddDomainEvent(NewAppointmentBooked(a))
	return a, nil
}

// Getters
func (a *Appointment) OwnerID() uuid.UUID            { return a.ownerID }
func (a *Appointment) Name() string                  { return a.name }
func (a *Appointment) PetName() string               { return a.petName }
func (a *Appointment) PetType() string               { return a.petType }
func (a *Appointment) Breed() string                 { return a.breed }
func (a *Appointment) HealthStatus() string          { return a.healthStatus }
func (a *Appointment) HealthHistory() string         { return a.healthHistory }
func (a *Appointment) Note() string                  { return a.note }
func (a *Appointment) AppointmentTime() time.Time    { return a.appointmentTime }
func (a *Appointment) CheckInTime() *time.Time       { return a.checkInTime }
func (a *Appointment) Status() Status                { return a.status }
func (a *Appointment) PreferredDoctorID() *uuid.UUID { return a.preferredDoctorID }
func (a *Appointment) AssignedDoctorID() *uuid.UUID  { return a.assignedDoctorID }

// Details returns the current booking details.
func (a *Appointment) Details() BookingDetails {
	return BookingDetails{
		Name:              a.name,
		PetName:           a.petName,
		PetType:           a.petType,
		Breed:             a.breed,
		HealthStatus:      a.healthStatus,
		HealthHistory:     a.healthHistory,
		Note:              a.note,
		AppointmentTime:   a.appointmentTime,
		PreferredDoctorID: copyID(a.preferredDoctorID),
	}
}

// Update replaces the booking details of a SCHEDULED appointment.
func (a *Appointment) Update(details BookingDetails) error {
	if err := a.require(StatusScheduled); err != nil {
		return err
	}
	if err := details.Validate(); err != nil {
		return err
	}

	a.apply(details)
	if details.PreferredDoctorID != nil {
		a.preferredDoctorID = copyID(details.PreferredDoctorID)
	}
	a.Touch()
	a.AddDomainEvent(NewAppointmentUpdated(a))
	return nil
}

// CheckIn puts a SCHEDULED appointment in the queue.
func (a *Appointment) CheckIn(at time.Time) error {
	if err := a.require(StatusScheduled); err != nil {
		return err
	}
	a.status = StatusCheckedIn
	a.checkInTime = &at
	a.Touch()
	a.AddDomainEvent(NewAppointmentCheckedIn(a))
	return nil
}

// Dispatch provisionally assigns doctorID and starts the visit.
func (a *Appointment) Dispatch(doctorID uuid.UUID) error {
	if err := a.require(StatusCheckedIn); err != nil {
		return err
	}
	if !a.IsEligibleFor(doctorID) {
		return ErrNoMatchingAppointment
	}
	a.status = StatusInProgress
	a.assignedDoctorID = &doctorID
	a.Touch()
	a.AddDomainEvent(NewAppointmentDispatched(a))
	return nil
}

// Complete finishes the visit; doctorID becomes the final assignment.
// The caller verifies that doctorID has the DOCTOR role.
func (a *Appointment) Complete(doctorID uuid.UUID) error {
	if err := a.require(StatusInProgress); err != nil {
		return err
	}
	a.status = StatusCompleted
	a.assignedDoctorID = &doctorID
	a.Touch()
	a.AddDomainEvent(NewAppointmentCompleted(a))
	return nil
}

// ReturnToQueue sends an IN_PROGRESS appointment to the back of the queue.
func (a *Appointment) ReturnToQueue(at time.Time) error {
	if err := a.require(StatusInProgress); err != nil {
		return err
	}
	previous := a.assignedDoctorID
	a.status = StatusCheckedIn
	a.assignedDoctorID = nil
	a.checkInTime = &at
	a.Touch()
	a.AddDomainEvent(NewAppointmentReturnedToQueue(a, previous))
	return nil
}

// UpdateNote replaces the visit note while the doctor is with the pet.
func (a *Appointment) UpdateNote(note string) error {
	if err := a.require(StatusInProgress); err != nil {
		return err
	}
	a.note = note
	a.Touch()
	a.AddDomainEvent(NewAppointmentNoteUpdated(a))
	return nil
}

// Cancel closes an appointment that has not been seen yet. The record is
// kept as history.
func (a *Appointment) Cancel() error {
	if err := a.require(StatusScheduled, StatusCheckedIn); err != nil {
		return err
	}
	a.status = StatusCancelled
	a.Touch()
	a.AddDomainEvent(NewAppointmentCancelled(a))
	return nil
}

// MarkDeleted checks that the appointment may be removed and records the
// deletion event. The repository performs the delete.
func (a *Appointment) MarkDeleted() error {
	if err := a.require(StatusScheduled); err != nil {
		return err
	}
	a.AddDomainEvent(NewAppointmentDeleted(a))
	return nil
}

// IsEligibleFor reports whether doctorID may take this appointment.
func (a *Appointment) IsEligibleFor(doctorID uuid.UUID) bool {
	return a.preferredDoctorID == nil || *a.preferredDoctorID == doctorID
}

func (a *Appointment) require(allowed ...Status) error {
	for _, s := range allowed {
		if a.status == s {
			return nil
		}
	}
	return newInvalidStatus(a.status, allowed...)
}

func (a *Appointment) apply(d BookingDetails) {
	a.name = strings.TrimSpace(d.Name)
	a.petName = strings.TrimSpace(d.PetName)
	a.petType = strings.TrimSpace(d.PetType)
	a.breed = strings.TrimSpace(d.Breed)
	a.healthStatus = strings.TrimSpace(d.HealthStatus)
	a.healthHistory = d.HealthHistory
	a.note = d.Note
	a.appointmentTime = d.AppointmentTime
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// AppointmentState is the persisted form of an appointment.
type AppointmentState struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Details          BookingDetails
	CheckInTime      *time.Time
	Status           Status
	AssignedDoctorID *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RehydrateAppointment recreates an appointment from persisted state.
func RehydrateAppointment(s AppointmentState) *Appointment {
	a := &Appointment{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(s.ID, s.CreatedAt, s.UpdatedAt),
		ownerID:           s.OwnerID,
		name:              s.Details.Name,
		petName:           s.Details.PetName,
		petType:           s.Details.PetType,
		breed:             s.Details.Breed,
		healthStatus:      s.Details.HealthStatus,
		healthHistory:     s.Details.HealthHistory,
		note:              s.Details.Note,
		appointmentTime:   s.Details.AppointmentTime,
		checkInTime:       s.CheckInTime,
		status:            s.Status,
		preferredDoctorID: copyID(s.Details.PreferredDoctorID),
		assignedDoctorID:  copyID(s.AssignedDoctorID),
	}
	return a
}
