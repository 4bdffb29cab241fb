package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/appointments/application/commands"
	"github.com/inheaven/petservice/internal/appointments/application/queries"
	"github.com/inheaven/petservice/internal/appointments/domain"
)

type bookInput struct {
	CustomerID        string `json:"customer_id" jsonschema:"required"`
	Name              string `json:"name" jsonschema:"required"`
	PetName           string `json:"pet_name" jsonschema:"required"`
	PetType           string `json:"type" jsonschema:"required"`
	Breed             string `json:"breed,omitempty"`
	HealthStatus      string `json:"health_status" jsonschema:"required"`
	HealthHistory     string `json:"health_history,omitempty"`
	Note              string `json:"note,omitempty"`
	AppointmentTime   string `json:"appointment_time" jsonschema:"required"`
	PreferredDoctorID string `json:"preferred_doctor_id,omitempty"`
}

type appointmentIDInput struct {
	AppointmentID string `json:"appointment_id" jsonschema:"required"`
}

type appointmentListInput struct {
	OwnerID string `json:"owner_id,omitempty"`
}

type appointmentSearchInput struct {
	Name   string `json:"name" jsonschema:"required"`
	Status string `json:"status,omitempty"`
}

type appointmentCompleteInput struct {
	AppointmentID string `json:"appointment_id" jsonschema:"required"`
	DoctorID      string `json:"doctor_id" jsonschema:"required"`
}

type appointmentNoteInput struct {
	AppointmentID string `json:"appointment_id" jsonschema:"required"`
	Note          string `json:"note"`
}

type appointmentTools struct {
	app *cli.App
}

func registerAppointmentTools(srv *mcp.Server, t appointmentTools) {
	srv.Tool("appointment.book").
		Description("Book an appointment for a customer").
		Handler(t.book)

	srv.Tool("appointment.get").
		Description("Get an appointment by ID").
		Handler(t.get)

	srv.Tool("appointment.list").
		Description("List appointments, optionally for one owner").
		Handler(t.list)

	srv.Tool("appointment.search").
		Description("Search appointments by booking name, optionally filtered by status").
		Handler(t.search)

	srv.Tool("appointment.check_in").
		Description("Check a pet in and add it to the waiting queue").
		Handler(t.checkIn)

	srv.Tool("appointment.complete").
		Description("Finish an in-progress appointment").
		Handler(t.complete)

	srv.Tool("appointment.return_to_queue").
		Description("Hand an in-progress appointment back to the waiting queue").
		Handler(t.returnToQueue)

	srv.Tool("appointment.update_note").
		Description("Replace the visit note of an in-progress appointment").
		Handler(t.updateNote)

	srv.Tool("appointment.cancel").
		Description("Cancel an appointment that has not been seen").
		Handler(t.cancel)
}

func (t appointmentTools) book(ctx context.Context, input bookInput) (*queries.AppointmentDTO, error) {
	if t.app.CreateAppointmentHandler == nil {
		return nil, errNoDatabase
	}
	customerID, err := parseUUID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	at, err := parseTime(input.AppointmentTime)
	if err != nil {
		return nil, err
	}
	doctorID, err := parseOptionalUUID(input.PreferredDoctorID)
	if err != nil {
		return nil, err
	}

	appointment, err := t.app.CreateAppointmentHandler.Handle(ctx, commands.CreateAppointmentCommand{
		CustomerID: customerID,
		Details: domain.BookingDetails{
			Name:              input.Name,
			PetName:           input.PetName,
			PetType:           input.PetType,
			Breed:             input.Breed,
			HealthStatus:      input.HealthStatus,
			HealthHistory:     input.HealthHistory,
			Note:              input.Note,
			AppointmentTime:   at,
			PreferredDoctorID: doctorID,
		},
	})
	return describe(ctx, t.app, appointment, err)
}

func (t appointmentTools) get(ctx context.Context, input appointmentIDInput) (*queries.AppointmentDTO, error) {
	if t.app.GetAppointmentHandler == nil {
		return nil, errNoDatabase
	}
	id, err := parseUUID(input.AppointmentID)
	if err != nil {
		return nil, err
	}
	return t.app.GetAppointmentHandler.Handle(ctx, queries.GetAppointmentQuery{AppointmentID: id})
}

func (t appointmentTools) list(ctx context.Context, input appointmentListInput) ([]queries.AppointmentDTO, error) {
	if t.app.ListAppointmentsHandler == nil {
		return nil, errNoDatabase
	}
	owner, err := parseOptionalUUID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	return t.app.ListAppointmentsHandler.Handle(ctx, queries.ListAppointmentsQuery{OwnerID: owner})
}

func (t appointmentTools) search(ctx context.Context, input appointmentSearchInput) ([]queries.AppointmentDTO, error) {
	if t.app.SearchAppointmentsHandler == nil {
		return nil, errNoDatabase
	}
	query := queries.SearchAppointmentsQuery{Name: input.Name}
	if input.Status != "" {
		status, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		query.Status = &status
	}
	return t.app.SearchAppointmentsHandler.Handle(ctx, query)
}

func (t appointmentTools) checkIn(ctx context.Context, input appointmentIDInput) (*queries.AppointmentDTO, error) {
	if t.app.CheckInHandler == nil {
		return nil, errNoDatabase
	}
	id, err := parseUUID(input.AppointmentID)
	if err != nil {
		return nil, err
	}
	appointment, err := t.app.CheckInHandler.Handle(ctx, commands.CheckInCommand{AppointmentID: id})
	return describe(ctx, t.app, appointment, err)
}

func (t appointmentTools) complete(ctx context.Context, input appointmentCompleteInput) (*queries.AppointmentDTO, error) {
	if t.app.CompleteAppointmentHandler == nil {
		return nil, errNoDatabase
	}
	id, err := parseUUID(input.AppointmentID)
	if err != nil {
		return nil, err
	}
	doctorID, err := parseUUID(input.DoctorID)
	if err != nil {
		return nil, err
	}
	appointment, err := t.app.CompleteAppointmentHandler.Handle(ctx, commands.CompleteAppointmentCommand{
		AppointmentID: id,
		DoctorID:      doctorID,
	})
	return describe(ctx, t.app, appointment, err)
}

func (t appointmentTools) returnToQueue(ctx context.Context, input appointmentIDInput) (*queries.AppointmentDTO, error) {
	if t.app.ReturnToQueueHandler == nil {
		return nil, errNoDatabase
	}
	id, err := parseUUID(input.AppointmentID)
	if err != nil {
		return nil, err
	}
	appointment, err := t.app.ReturnToQueueHandler.Handle(ctx, commands.ReturnToQueueCommand{AppointmentID: id})
	return describe(ctx, t.app, appointment, err)
}

func (t appointmentTools) updateNote(ctx context.Context, input appointmentNoteInput) (*queries.AppointmentDTO, error) {
	if t.app.UpdateNoteHandler == nil {
		return nil, errNoDatabase
	}
	id, err := parseUUID(input.AppointmentID)
	if err != nil {
		return nil, err
	}
	appointment, err := t.app.UpdateNoteHandler.Handle(ctx, commands.UpdateNoteCommand{
		AppointmentID: id,
		Note:          input.Note,
	})
	return describe(ctx, t.app, appointment, err)
}

func (t appointmentTools) cancel(ctx context.Context, input appointmentIDInput) (*queries.AppointmentDTO, error) {
	if t.app.CancelAppointmentHandler == nil {
		return nil, errNoDatabase
	}
	id, err := parseUUID(input.AppointmentID)
	if err != nil {
		return nil, err
	}
	appointment, err := t.app.CancelAppointmentHandler.Handle(ctx, commands.CancelAppointmentCommand{AppointmentID: id})
	return describe(ctx, t.app, appointment, err)
}

func describe(ctx context.Context, app *cli.App, a *domain.Appointment, err error) (*queries.AppointmentDTO, error) {
	if err != nil {
		return nil, err
	}
	dto, err := app.Describe(ctx, a)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}
