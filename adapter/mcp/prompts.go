package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common front-desk workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("queue_overview").
		Description("Summarize who is waiting and which doctors can take the next pet.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Waiting room overview",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Give me an overview of the waiting room:

1. Read the petservice://queue resource for the checked-in pets
2. Read the petservice://doctors resource for the doctors on staff

Then:
- List the waiting pets in order with how long each has waited
- Point out pets waiting for a specific doctor
- Suggest which doctor should call queue.next first

Use the appointment.* and queue.* tools for any changes.`,
						},
					},
				},
			}, nil
		})

	srv.Prompt("front_desk_check_in").
		Description("Walk through finding a booking and checking the pet in.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			name := args["name"]
			if name == "" {
				name = "the arriving customer"
			}
			return &mcp.PromptResult{
				Description: "Front desk check-in",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: fmt.Sprintf(`A customer has arrived. Find the booking for %s with
appointment.search (status SCHEDULED), confirm the pet name with me, then
call appointment.check_in. If there is no booking, offer to create one with
appointment.book.`, name),
						},
					},
				},
			}, nil
		})

	return nil
}
