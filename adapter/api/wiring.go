package api

import (
	"github.com/inheaven/petservice/internal/app"
)

// NewServerFromContainer builds a server over the handlers wired in c.
func NewServerFromContainer(cfg ServerConfig, c *app.Container) *Server {
	appointments := NewAppointmentHandler(AppointmentHandlerConfig{
		Create:        c.CreateAppointmentHandler,
		Update:        c.UpdateAppointmentHandler,
		CheckIn:       c.CheckInHandler,
		DispatchNext:  c.DispatchNextHandler,
		Complete:      c.CompleteAppointmentHandler,
		ReturnToQueue: c.ReturnToQueueHandler,
		UpdateNote:    c.UpdateNoteHandler,
		Cancel:        c.CancelAppointmentHandler,
		Delete:        c.DeleteAppointmentHandler,
		Get:           c.GetAppointmentHandler,
		List:          c.ListAppointmentsHandler,
		Search:        c.SearchAppointmentsHandler,
		Queue:         c.ListQueueHandler,
		Describer:     c.Describer,
		Logger:        c.Logger,
	})
	users := NewUserHandler(c.RegisterUserHandler, c.GetUserHandler, c.ListUsersHandler, c.Logger)
	return NewServer(cfg, appointments, users, c.Health, c.Metrics, c.Logger)
}
