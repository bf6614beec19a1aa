package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubDeliversToOwnUserOnly(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	alice, cancelAlice := hub.Subscribe("alice")
	defer cancelAlice()
	bob, cancelBob := hub.Subscribe("bob")
	defer cancelBob()

	hub.Publish("alice", ChangeEvent{Table: "stock_items", Action: ActionUpdate, RecordID: "1"})

	select {
	case event := <-alice:
		assert.Equal(t, "1", event.RecordID)
	default:
		t.Fatal("expected event for alice")
	}

	select {
	case <-bob:
		t.Fatal("bob must not see alice's events")
	default:
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_, cancel := hub.Subscribe("alice")
	defer cancel()

	// Far beyond the channel buffer; Publish must never block.
	for i := 0; i < 1000; i++ {
		hub.Publish("alice", ChangeEvent{Table: "stock_items", Action: ActionInsert})
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ch, cancel := hub.Subscribe("alice")
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe is a no-op.
	hub.Publish("alice", ChangeEvent{Table: "stock_items", Action: ActionInsert})
}

func TestHubCloseClosesAllSubscribers(t *testing.T) {
	hub := NewHub()

	a, _ := hub.Subscribe("alice")
	b, _ := hub.Subscribe("bob")
	hub.Close()

	_, openA := <-a
	_, openB := <-b
	assert.False(t, openA)
	assert.False(t, openB)

	// Subscribing after close yields an already closed channel.
	c, cancel := hub.Subscribe("carol")
	defer cancel()
	_, openC := <-c
	assert.False(t, openC)
}
