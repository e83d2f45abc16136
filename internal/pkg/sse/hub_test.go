package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesAllSessions(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("emp-1")
	ch2, cleanup2 := hub.Subscribe("emp-1")
	defer cleanup1()
	defer cleanup2()

	other, cleanupOther := hub.Subscribe("emp-2")
	defer cleanupOther()

	hub.Publish("emp-1", Event{EmployeeID: "emp-1", Event: "notification", Data: "hello"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "notification", ev.Event)
			assert.Equal(t, "hello", ev.Data)
		default:
			t.Fatal("expected event on session channel")
		}
	}

	select {
	case <-other:
		t.Fatal("event leaked to another employee's session")
	default:
	}
}

func TestHubUnsubscribeRemovesSession(t *testing.T) {
	hub := NewHub()

	_, cleanup1 := hub.Subscribe("emp-1")
	_, cleanup2 := hub.Subscribe("emp-1")
	require.Equal(t, 2, hub.SessionCount("emp-1"))

	cleanup1()
	assert.Equal(t, 1, hub.SessionCount("emp-1"))

	cleanup2()
	assert.Equal(t, 0, hub.SessionCount("emp-1"))
	assert.Equal(t, 0, hub.TotalSessions())

	// Publishing to an employee with no sessions is a no-op.
	hub.Publish("emp-1", Event{EmployeeID: "emp-1", Event: "notification"})
}

func TestHubFullBufferDropsEvent(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	for i := 0; i < cap(ch)+5; i++ {
		hub.Publish("emp-1", Event{EmployeeID: "emp-1", Event: "notification", Data: i})
	}

	// The overflow is dropped rather than blocking the publisher.
	assert.Equal(t, cap(ch), len(ch))
}
