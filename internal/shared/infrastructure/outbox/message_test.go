package outbox

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	domain.BaseEvent
	PetName string `json:"pet_name"`
}

func newTestEvent(aggregateID uuid.UUID, petName string) *testEvent {
	return &testEvent{
		BaseEvent: domain.NewBaseEvent(aggregateID, "Appointment", "appointments.appointment.booked"),
		PetName:   petName,
	}
}

func TestNewMessage(t *testing.T) {
	aggregateID := uuid.New()
	event := newTestEvent(aggregateID, "Rex")
	meta := domain.EventMetadata{CorrelationID: uuid.New(), CausationID: uuid.New(), UserID: uuid.New()}
	event.SetMetadata(meta)

	msg, err := NewMessage(event)
	require.NoError(t, err)

	assert.Equal(t, event.EventID(), msg.EventID)
	assert.Equal(t, "Appointment", msg.AggregateType)
	assert.Equal(t, aggregateID, msg.AggregateID)
	assert.Equal(t, "appointments.appointment.booked", msg.RoutingKey)
	assert.Equal(t, msg.RoutingKey, msg.EventType)
	assert.Equal(t, event.OccurredAt(), msg.CreatedAt)
	assert.False(t, msg.IsPublished())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "Rex", payload["pet_name"])

	assert.Equal(t, meta, msg.EventMetadata())
}

func TestNewMessages(t *testing.T) {
	events := []domain.DomainEvent{newTestEvent(uuid.New(), "a"), newTestEvent(uuid.New(), "b")}

	msgs, err := NewMessages(events)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, events[1].EventID(), msgs[1].EventID)
}

func TestMessage_CanRetry(t *testing.T) {
	msg := &Message{RetryCount: 2}
	assert.True(t, msg.CanRetry(3))
	assert.False(t, msg.CanRetry(2))
}

func TestMessage_EventMetadataMalformed(t *testing.T) {
	msg := &Message{Metadata: json.RawMessage(`{not json`)}
	assert.Equal(t, domain.EventMetadata{}, msg.EventMetadata())
}
