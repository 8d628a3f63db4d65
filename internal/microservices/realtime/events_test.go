package realtime

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusEvent_String(t *testing.T) {
	assert.Equal(t, "STATUS:CONNECTED", newStatus(StatusConnected, "").String())
	assert.Equal(t, "STATUS:DISCONNECTED", newStatus(StatusDisconnected, "").String())
	assert.Equal(t, "STATUS:DISCONNECTING", newStatus(StatusDisconnecting, "").String())
	assert.Equal(t, "STATUS:RECONNECTING...", newStatus(StatusReconnecting, "").String())
	assert.Equal(t, "STATUS:ERROR: timeout", newStatus(StatusError, "timeout").String())

	for _, s := range []Status{StatusConnected, StatusDisconnected, StatusDisconnecting, StatusReconnecting, StatusError} {
		assert.True(t, IsStatusText(newStatus(s, "x").String()))
	}
	assert.False(t, IsStatusText(`{"type":"add_villa","data":{}}`))
	assert.False(t, IsStatusText("status:connected"))
}

func TestEventBus_FanOut(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	a, cancelA := bus.Subscribe()
	defer cancelA()
	b, cancelB := bus.Subscribe()
	defer cancelB()

	bus.Publish(newStatus(StatusConnected, ""))
	bus.Publish(DataEvent{Raw: []byte("frame")})

	for _, ch := range []<-chan Event{a, b} {
		first := <-ch
		assert.Equal(t, StatusConnected, first.(StatusEvent).Status)
		second := <-ch
		assert.Equal(t, "frame", string(second.(DataEvent).Raw))
	}
}

func TestEventBus_PublishNeverBlocks(t *testing.T) {
	bus := NewEventBus()
	slow, cancel := bus.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			bus.Publish(DataEvent{Raw: []byte(fmt.Sprint(i))})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a subscriber that is not reading")
	}

	// order is preserved per subscriber
	for i := 0; i < 10000; i++ {
		e := <-slow
		require.Equal(t, fmt.Sprint(i), string(e.(DataEvent).Raw))
	}
	bus.Close()
}

func TestEventBus_CloseDeliversQueuedThenCloses(t *testing.T) {
	bus := NewEventBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(newStatus(StatusConnected, ""))
	bus.Publish(newStatus(StatusDisconnected, ""))
	bus.Close()
	bus.Publish(newStatus(StatusReconnecting, ""))

	got := collect(t, ch)
	require.Len(t, got, 2)
	assert.Equal(t, StatusDisconnected, got[1].(StatusEvent).Status)

	late, lateCancel := bus.Subscribe()
	defer lateCancel()
	_, open := <-late
	assert.False(t, open)

	bus.Close()
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	bus.Publish(newStatus(StatusConnected, ""))
	cancel()
	cancel()
	bus.Publish(newStatus(StatusDisconnected, ""))

	select {
	case _, open := <-ch:
		if open {
			// an event already handed to the forwarder may still arrive once
			_, open = <-ch
		}
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}
}
