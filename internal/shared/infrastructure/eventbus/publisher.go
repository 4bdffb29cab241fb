package eventbus

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Envelope is one outbox message on its way to the broker.
type Envelope struct {
	EventID       uuid.UUID
	RoutingKey    string
	Payload       []byte
	CorrelationID string
}

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
	Close() error
}

// NoopPublisher logs and drops events. It is used when no broker is configured.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(ctx context.Context, env Envelope) error {
	p.logger.DebugContext(ctx, "noop publish",
		"routing_key", env.RoutingKey,
		"event_id", env.EventID,
		"size", len(env.Payload),
	)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
