package mcp

import (
	"errors"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/inheaven/petservice/adapter/cli"
)

// ToolDependencies provides handlers for MCP tools.
type ToolDependencies struct {
	App *cli.App
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	registerAppointmentTools(srv, appointmentTools{app: deps.App})
	registerQueueTools(srv, queueTools{app: deps.App})
	registerUserTools(srv, userTools{app: deps.App})
	return nil
}
