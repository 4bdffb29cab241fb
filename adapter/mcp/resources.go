package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/inheaven/petservice/internal/appointments/application/queries"
	identityQueries "github.com/inheaven/petservice/internal/identity/application/queries"
)

// RegisterResources registers MCP resources that expose clinic state.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	srv.Resource("petservice://queue").
		Name("Waiting queue").
		Description("Checked-in pets in the order doctors will be offered them").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.ListQueueHandler == nil {
				return nil, fmt.Errorf("queue listing %w", errNoDatabase)
			}
			entries, err := app.ListQueueHandler.Handle(ctx, queries.ListQueueQuery{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, entries)
		})

	srv.Resource("petservice://doctors").
		Name("Doctors").
		Description("Registered doctors and their IDs").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.ListUsersHandler == nil {
				return nil, fmt.Errorf("user listing %w", errNoDatabase)
			}
			doctors, err := app.ListUsersHandler.Handle(ctx, identityQueries.ListUsersQuery{Role: "DOCTOR"})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, doctors)
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
