package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrBrokerUnavailable is returned while the breaker is open; the outbox
// keeps the message and retries it on a later poll.
var ErrBrokerUnavailable = errors.New("message broker unavailable")

// BreakerConfig configures the publisher circuit breaker.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive publish failures that
	// opens the breaker.
	FailureThreshold uint32
	// Timeout is how long the breaker stays open before a trial publish.
	Timeout time.Duration
	// MaxRequests is the number of trial publishes allowed half-open.
	MaxRequests uint32
}

// BreakerPublisher wraps a Publisher with a circuit breaker.
type BreakerPublisher struct {
	next    Publisher
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerPublisher wraps next.
func NewBreakerPublisher(next Publisher, cfg BreakerConfig, logger *slog.Logger) *BreakerPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}

	settings := gobreaker.Settings{
		Name:        "rabbitmq-publisher",
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("publisher circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerPublisher{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// Publish forwards to the wrapped publisher unless the breaker is open.
func (p *BreakerPublisher) Publish(ctx context.Context, env Envelope) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.next.Publish(ctx, env)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrBrokerUnavailable
	}
	return err
}

// State reports the breaker state, e.g. for readiness checks.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.breaker.State()
}

func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}
