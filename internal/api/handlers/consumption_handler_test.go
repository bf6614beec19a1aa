package handlers

import (
	"GIVD-Backend/internal/events"
	"bufio"
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type deadConnWriter struct{}

func (deadConnWriter) Write(p []byte) (int, error) {
	return 0, errors.New("connection closed")
}

func TestStreamChangeEvents_WritesFrames(t *testing.T) {
	hub := events.NewHub()
	defer hub.Close()

	ch, unsubscribe := hub.Subscribe("alice")
	hub.Publish("alice", events.ChangeEvent{Table: "consumption_logs", Action: events.ActionInsert, RecordID: "1"})
	unsubscribe()

	// The buffered event is drained before the closed channel ends the loop.
	var buf bytes.Buffer
	streamChangeEvents(bufio.NewWriter(&buf), ch, time.Hour)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("data: ")))
	assert.Contains(t, buf.String(), `"record_id":"1"`)
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n\n")))
}

func TestStreamChangeEvents_HeartbeatDetectsDeadConnection(t *testing.T) {
	hub := events.NewHub()
	defer hub.Close()

	ch, unsubscribe := hub.Subscribe("alice")
	defer unsubscribe()

	// No events ever arrive; the heartbeat alone must surface the dead
	// connection and end the stream.
	done := make(chan struct{})
	go func() {
		streamChangeEvents(bufio.NewWriter(deadConnWriter{}), ch, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream goroutine leaked on a dead idle connection")
	}
}

func TestStreamChangeEvents_ReturnsOnClosedChannel(t *testing.T) {
	ch := make(chan events.ChangeEvent)
	close(ch)

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		streamChangeEvents(bufio.NewWriter(&buf), ch, time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream must return once the channel closes")
	}
	assert.Zero(t, buf.Len())
}
