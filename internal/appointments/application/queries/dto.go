package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
)

// AppointmentDTO is a data transfer object for appointments.
type AppointmentDTO struct {
	ID                  uuid.UUID  `json:"id"`
	OwnerID             uuid.UUID  `json:"owner_id"`
	UserName            string     `json:"user_name"`
	Name                string     `json:"name"`
	PetName             string     `json:"pet_name"`
	PetType             string     `json:"type"`
	Breed               string     `json:"breed"`
	HealthStatus        string     `json:"health_status"`
	HealthHistory       string     `json:"health_history"`
	Note                string     `json:"note"`
	AppointmentTime     time.Time  `json:"appointment_time"`
	CheckInTime         *time.Time `json:"check_in_time,omitempty"`
	Status              string     `json:"status"`
	PreferredDoctorID   *uuid.UUID `json:"preferred_doctor_id,omitempty"`
	PreferredDoctorName string     `json:"preferred_doctor_name,omitempty"`
	AssignedDoctorID    *uuid.UUID `json:"assigned_doctor_id,omitempty"`
	AssignedDoctorName  string     `json:"assigned_doctor_name,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToAppointmentDTO converts an appointment to its transfer form without
// resolving user names. Use a Describer for the named form.
func ToAppointmentDTO(a *domain.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:                a.ID(),
		OwnerID:           a.OwnerID(),
		Name:              a.Name(),
		PetName:           a.PetName(),
		PetType:           a.PetType(),
		Breed:             a.Breed(),
		HealthStatus:      a.HealthStatus(),
		HealthHistory:     a.HealthHistory(),
		Note:              a.Note(),
		AppointmentTime:   a.AppointmentTime(),
		CheckInTime:       a.CheckInTime(),
		Status:            a.Status().String(),
		PreferredDoctorID: a.PreferredDoctorID(),
		AssignedDoctorID:  a.AssignedDoctorID(),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}
