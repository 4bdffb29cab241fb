package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/adapter/cli/appointment"
	"github.com/inheaven/petservice/adapter/cli/mcp"
	"github.com/inheaven/petservice/adapter/cli/queue"
	"github.com/inheaven/petservice/adapter/cli/user"
	"github.com/inheaven/petservice/internal/app"
	"github.com/inheaven/petservice/pkg/config"
	"github.com/inheaven/petservice/pkg/observability"
)

func main() {
	logger := observability.NewLogger(observability.DefaultLogConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}
	logger = observability.NewLogger(observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat))
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
		// migrate and version still work without a database
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close()
		cliApp = cli.NewApp(container)
	}
	cli.SetApp(cliApp)

	cli.AddCommand(appointment.Cmd)
	cli.AddCommand(queue.Cmd)
	cli.AddCommand(user.Cmd)
	cli.AddCommand(mcp.Cmd)

	cli.Execute(ctx)
}
