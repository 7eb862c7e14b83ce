package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusDelivers(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(SendMessageEvent{Message: "Hi"}))
	require.NoError(t, eb.SendToUI(StateUpdateEvent{IsProcessing: true}))

	assert.Equal(t, SendMessageEvent{Message: "Hi"}, <-eb.UIToCore())
	update, ok := (<-eb.CoreToUI()).(StateUpdateEvent)
	require.True(t, ok)
	assert.True(t, update.IsProcessing)
}

func TestEventBusFullChannelReportsError(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	for i := 0; i < cap(eb.uiToCore); i++ {
		require.NoError(t, eb.SendToCore(ClearHistoryEvent{}))
	}
	err := eb.SendToCore(ClearHistoryEvent{})
	require.ErrorIs(t, err, ErrChannelFull)
	require.Len(t, reported, 1)
	assert.Equal(t, "SendToCore", reported[0].Operation)
	assert.ErrorIs(t, reported[0], ErrChannelFull)
}

func TestCircuitBreaker(t *testing.T) {
	cb := NewCircuitBreaker(2, 10*time.Millisecond)

	cb.RecordFailure()
	assert.False(t, cb.IsOpen())
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	time.Sleep(20 * time.Millisecond)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCloseIsIdempotent(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	_, ok := <-eb.UIToCore()
	assert.False(t, ok)
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrClosed)
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	for i := 0; i < cap(eb.coreToUI); i++ {
		require.NoError(t, eb.SendToUI(StateUpdateEvent{}))
	}
	for i := 0; i < 5; i++ {
		require.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrChannelFull)
	}
	assert.Equal(t, CircuitOpen, eb.GetCircuitBreakerState())
	assert.ErrorIs(t, eb.SendToCore(ClearHistoryEvent{}), ErrCircuitOpen)
	assert.Equal(t, "open", CircuitOpen.String())
}
