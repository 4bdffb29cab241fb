package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/inheaven/petservice/adapter/api"
	"github.com/spf13/cobra"
)

var shutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on HTTP_ADDR and block until interrupted.

Examples:
  petservice serve
  HTTP_ADDR=:9090 petservice serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		if app.Container == nil {
			return ErrNotInitialized
		}

		cfg := api.DefaultServerConfig()
		if addr := app.Container.Config.HTTPAddr; addr != "" {
			cfg.Addr = addr
		}
		server := api.NewServerFromContainer(cfg, app.Container)

		errCh := make(chan error, 1)
		go func() {
			Logger().Info("http server listening", "addr", cfg.Addr)
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-cmd.Context().Done():
		}

		Logger().Info("shutting down http server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
	rootCmd.AddCommand(serveCmd)
}
