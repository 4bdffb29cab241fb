package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentEvents_Lifecycle(t *testing.T) {
	doctorID := uuid.New()
	a, err := NewAppointment(uuid.New(), validDetails())
	require.NoError(t, err)

	require.NoError(t, a.CheckIn(t0))
	require.NoError(t, a.Dispatch(doctorID))
	require.NoError(t, a.UpdateNote("ok"))
	require.NoError(t, a.ReturnToQueue(t0.Add(time.Hour)))
	require.NoError(t, a.Dispatch(doctorID))
	require.NoError(t, a.Complete(doctorID))

	var keys []string
	for _, e := range a.DomainEvents() {
		assert.Equal(t, a.ID(), e.AggregateID())
		assert.Equal(t, "Appointment", e.AggregateType())
		keys = append(keys, e.RoutingKey())
	}
	assert.Equal(t, []string{
		RoutingKeyBooked,
		RoutingKeyCheckedIn,
		RoutingKeyDispatched,
		RoutingKeyNoteUpdated,
		RoutingKeyReturnedToQueue,
		RoutingKeyDispatched,
		RoutingKeyCompleted,
	}, keys)
}

func TestAppointmentDispatched_JSON(t *testing.T) {
	doctorID := uuid.New()
	a := newScheduled(t)
	require.NoError(t, a.CheckIn(t0))
	require.NoError(t, a.Dispatch(doctorID))

	payload, err := json.Marshal(a.DomainEvents()[1])
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, a.ID().String(), decoded["appointment_id"])
	assert.Equal(t, doctorID.String(), decoded["doctor_id"])
}
