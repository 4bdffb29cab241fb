package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct {
	calls int
	err   error
}

func (p *failingPublisher) Publish(ctx context.Context, env Envelope) error {
	p.calls++
	return p.err
}

func (p *failingPublisher) Close() error { return nil }

func testEnvelope() Envelope {
	return Envelope{
		EventID:       uuid.New(),
		RoutingKey:    "appointments.appointment.checked_in",
		Payload:       []byte(`{"status":"CHECKED_IN"}`),
		CorrelationID: "corr-1",
	}
}

func TestBreakerPublisher_OpensAfterThreshold(t *testing.T) {
	next := &failingPublisher{err: errors.New("connection reset")}
	pub := NewBreakerPublisher(next, BreakerConfig{FailureThreshold: 2, Timeout: time.Minute}, nil)
	ctx := context.Background()

	require.EqualError(t, pub.Publish(ctx, testEnvelope()), "connection reset")
	require.EqualError(t, pub.Publish(ctx, testEnvelope()), "connection reset")
	assert.Equal(t, gobreaker.StateOpen, pub.State())

	err := pub.Publish(ctx, testEnvelope())
	assert.ErrorIs(t, err, ErrBrokerUnavailable)
	assert.Equal(t, 2, next.calls, "open breaker must not reach the broker")
}

func TestBreakerPublisher_PassesThroughSuccess(t *testing.T) {
	next := &failingPublisher{}
	pub := NewBreakerPublisher(next, BreakerConfig{}, nil)

	require.NoError(t, pub.Publish(context.Background(), testEnvelope()))
	assert.Equal(t, gobreaker.StateClosed, pub.State())
	assert.Equal(t, 1, next.calls)
	assert.NoError(t, pub.Close())
}

func TestPublishing(t *testing.T) {
	env := testEnvelope()
	now := time.Now()

	msg := publishing(env, now)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, env.EventID.String(), msg.MessageId)
	assert.Equal(t, "corr-1", msg.CorrelationId)
	assert.Equal(t, env.RoutingKey, msg.Type)
	assert.Equal(t, env.Payload, msg.Body)
	assert.Equal(t, now, msg.Timestamp)
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher(nil)
	assert.NoError(t, pub.Publish(context.Background(), testEnvelope()))
	assert.NoError(t, pub.Close())
}
