package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/appointments/application/commands"
	"github.com/inheaven/petservice/internal/appointments/application/queries"
)

type queueListInput struct{}

type queueNextInput struct {
	DoctorID string `json:"doctor_id" jsonschema:"required"`
}

type queueTools struct {
	app *cli.App
}

func registerQueueTools(srv *mcp.Server, t queueTools) {
	srv.Tool("queue.list").
		Description("List checked-in pets in dispatch order").
		Handler(t.list)

	srv.Tool("queue.next").
		Description("Assign the next eligible waiting pet to a doctor").
		Handler(t.next)
}

func (t queueTools) list(ctx context.Context, _ queueListInput) ([]queries.QueueEntryDTO, error) {
	if t.app.ListQueueHandler == nil {
		return nil, errNoDatabase
	}
	return t.app.ListQueueHandler.Handle(ctx, queries.ListQueueQuery{})
}

func (t queueTools) next(ctx context.Context, input queueNextInput) (*queries.AppointmentDTO, error) {
	if t.app.DispatchNextHandler == nil {
		return nil, errNoDatabase
	}
	doctorID, err := parseUUID(input.DoctorID)
	if err != nil {
		return nil, err
	}
	appointment, err := t.app.DispatchNextHandler.Handle(ctx, commands.DispatchNextCommand{DoctorID: doctorID})
	return describe(ctx, t.app, appointment, err)
}
