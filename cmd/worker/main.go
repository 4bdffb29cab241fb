package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inheaven/petservice/internal/app"
	"github.com/inheaven/petservice/internal/shared/infrastructure/eventbus"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
	"github.com/inheaven/petservice/pkg/config"
	"github.com/inheaven/petservice/pkg/observability"
)

func main() {
	logger := observability.NewLogger(observability.DefaultLogConfig())
	logger.Info("starting petservice worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = observability.NewLogger(observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat))

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	processorConfig := outbox.DefaultProcessorConfig()
	processorConfig.PollInterval = cfg.OutboxPollInterval
	processorConfig.BatchSize = cfg.OutboxBatchSize
	processorConfig.MaxRetries = cfg.OutboxMaxRetries
	processor := outbox.NewProcessor(container.OutboxRepo, publisher, processorConfig, logger, container.Metrics)

	logger.Info("starting outbox processor",
		"poll_interval", processorConfig.PollInterval,
		"batch_size", processorConfig.BatchSize,
		"max_retries", processorConfig.MaxRetries,
	)
	if err := processor.Start(ctx); err != nil {
		logger.Error("failed to start outbox processor", "error", err)
		os.Exit(1)
	}

	go runEvery(ctx, cfg.OutboxCleanupInterval, func() {
		deleted, err := container.OutboxRepo.DeleteOld(ctx, cfg.OutboxRetentionDays)
		if err != nil {
			logger.Error("outbox cleanup failed", "error", err)
			return
		}
		if deleted > 0 {
			logger.Info("outbox cleanup completed", "deleted", deleted, "retention_days", cfg.OutboxRetentionDays)
		}
	})

	go runEvery(ctx, cfg.OutboxStatsInterval, func() {
		stats := processor.GetStats()
		logger.Info("outbox stats",
			"running", stats.IsRunning,
			"published", stats.PublishedCount,
			"failed", stats.FailedCount,
			"dead", stats.DeadCount,
			"lag_seconds", stats.LagSeconds,
			"oldest_message_at", stats.OldestMessageAt,
			"last_processed_at", stats.LastProcessedAt,
			"last_error_at", stats.LastErrorAt,
			"last_error", stats.LastError,
		)
	})

	if cfg.WorkerHealthAddr != "" {
		startHealthServer(ctx, cfg.WorkerHealthAddr, processor, container.Health, logger)
	}

	<-ctx.Done()
	logger.Info("shutting down worker")

	processor.Stop()
	logger.Info("worker stopped")
}

// newPublisher connects to RabbitMQ behind a circuit breaker. Development
// falls back to logging events when the broker is unreachable.
func newPublisher(cfg *config.Config, logger *slog.Logger) eventbus.Publisher {
	rabbit, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			return eventbus.NewNoopPublisher(logger)
		}
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	logger.Info("event publisher initialized")

	return eventbus.NewBreakerPublisher(rabbit, eventbus.BreakerConfig{
		FailureThreshold: uint32(cfg.PublisherBreakerThreshold),
		Timeout:          cfg.PublisherBreakerTimeout,
		MaxRequests:      1,
	}, logger)
}

func runEvery(ctx context.Context, interval time.Duration, fn func()) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

func startHealthServer(ctx context.Context, addr string, processor *outbox.Processor, health *observability.HealthRegistry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		stats := processor.GetStats()
		writeJSON(w, http.StatusOK, map[string]any{
			"status":            "ok",
			"running":           stats.IsRunning,
			"published":         stats.PublishedCount,
			"failed":            stats.FailedCount,
			"dead":              stats.DeadCount,
			"last_processed_at": stats.LastProcessedAt,
			"last_error_at":     stats.LastErrorAt,
			"last_error":        stats.LastError,
		})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		report := health.Check(checkCtx)
		status := http.StatusOK
		if report.Status == observability.HealthStatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, report)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("health server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("health server shutdown error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
