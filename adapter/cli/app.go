package cli

import (
	"context"

	"github.com/inheaven/petservice/internal/app"
	appointmentDomain "github.com/inheaven/petservice/internal/appointments/domain"
	appointmentCommands "github.com/inheaven/petservice/internal/appointments/application/commands"
	appointmentQueries "github.com/inheaven/petservice/internal/appointments/application/queries"
	identityCommands "github.com/inheaven/petservice/internal/identity/application/commands"
	identityQueries "github.com/inheaven/petservice/internal/identity/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Appointment Command Handlers
	CreateAppointmentHandler   *appointmentCommands.CreateAppointmentHandler
	UpdateAppointmentHandler   *appointmentCommands.UpdateAppointmentHandler
	CheckInHandler             *appointmentCommands.CheckInHandler
	DispatchNextHandler        *appointmentCommands.DispatchNextHandler
	CompleteAppointmentHandler *appointmentCommands.CompleteAppointmentHandler
	ReturnToQueueHandler       *appointmentCommands.ReturnToQueueHandler
	UpdateNoteHandler          *appointmentCommands.UpdateNoteHandler
	CancelAppointmentHandler   *appointmentCommands.CancelAppointmentHandler
	DeleteAppointmentHandler   *appointmentCommands.DeleteAppointmentHandler

	// Appointment Query Handlers
	GetAppointmentHandler     *appointmentQueries.GetAppointmentHandler
	ListAppointmentsHandler   *appointmentQueries.ListAppointmentsHandler
	SearchAppointmentsHandler *appointmentQueries.SearchAppointmentsHandler
	ListQueueHandler          *appointmentQueries.ListQueueHandler
	Describer                 *appointmentQueries.Describer

	// Identity Handlers
	RegisterUserHandler *identityCommands.RegisterUserHandler
	GetUserHandler      *identityQueries.GetUserHandler
	ListUsersHandler    *identityQueries.ListUsersHandler

	// Container is kept for commands that need infrastructure, such as serve.
	Container *app.Container
}

// NewApp creates a CLI application backed by the handlers of c.
func NewApp(c *app.Container) *App {
	return &App{
		CreateAppointmentHandler:   c.CreateAppointmentHandler,
		UpdateAppointmentHandler:   c.UpdateAppointmentHandler,
		CheckInHandler:             c.CheckInHandler,
		DispatchNextHandler:        c.DispatchNextHandler,
		CompleteAppointmentHandler: c.CompleteAppointmentHandler,
		ReturnToQueueHandler:       c.ReturnToQueueHandler,
		UpdateNoteHandler:          c.UpdateNoteHandler,
		CancelAppointmentHandler:   c.CancelAppointmentHandler,
		DeleteAppointmentHandler:   c.DeleteAppointmentHandler,
		GetAppointmentHandler:      c.GetAppointmentHandler,
		ListAppointmentsHandler:    c.ListAppointmentsHandler,
		SearchAppointmentsHandler:  c.SearchAppointmentsHandler,
		ListQueueHandler:           c.ListQueueHandler,
		Describer:                  c.Describer,
		RegisterUserHandler:        c.RegisterUserHandler,
		GetUserHandler:             c.GetUserHandler,
		ListUsersHandler:           c.ListUsersHandler,
		Container:                  c,
	}
}

// Describe converts a command result to its DTO with user names resolved.
func (a *App) Describe(ctx context.Context, appointment *appointmentDomain.Appointment) (appointmentQueries.AppointmentDTO, error) {
	if a.Describer == nil {
		return appointmentQueries.ToAppointmentDTO(appointment), nil
	}
	return a.Describer.Describe(ctx, appointment)
}

// cliApp is the global CLI application instance
var cliApp *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	cliApp = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return cliApp
}
