package mcp

import (
	"context"
	"errors"

	"github.com/inheaven/petservice/adapter/cli"
	mcpinternal "github.com/inheaven/petservice/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server on MCP_ADDR. When MCP_AUTH_TOKEN is set every
request must send it as a bearer token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if app.Container == nil {
			return cli.ErrNotInitialized
		}

		err = mcpinternal.Serve(cmd.Context(), app.Container.Config, app, cli.Logger())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
