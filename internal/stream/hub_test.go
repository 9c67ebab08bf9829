package stream

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/evhjem/hubdrive/internal/logger"
)

// These tests exercise hub behavior (fan-out and slow-client eviction)
// without standing up a real websocket server: clients are constructed
// with a nil conn and the tested paths never perform network writes.

func TestMain(m *testing.M) {
	logger.Init(false, false, false)
	os.Exit(m.Run())
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func registered(hub *Hub, c *Client) func() bool {
	return func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		_, ok := hub.clients[c]
		return ok
	}
}

func TestHubBroadcastDeliveredToAllClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(logger.Default(), HubConfig{SendBuf: 4, BroadcastBuf: 8})
	go hub.Run(ctx)

	c1 := &Client{hub: hub, send: make(chan []byte, 4), remoteAddr: "c1", log: logger.Default()}
	c2 := &Client{hub: hub, send: make(chan []byte, 4), remoteAddr: "c2", log: logger.Default()}

	hub.register <- c1
	waitUntil(t, 500*time.Millisecond, registered(hub, c1), "client1 not registered in time")
	hub.register <- c2
	waitUntil(t, 500*time.Millisecond, registered(hub, c2), "client2 not registered in time")

	msg := []byte(`{"power":42,"angle":-10}`)
	hub.broadcast <- msg

	for _, c := range []*Client{c1, c2} {
		select {
		case got := <-c.send:
			assert.Equal(t, msg, got)
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("client %s did not receive broadcast", c.remoteAddr)
		}
	}
}

func TestHubEvictsSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(logger.Default(), HubConfig{SendBuf: 1, BroadcastBuf: 8})
	go hub.Run(ctx)

	// A client whose queue is already full cannot take the next message.
	slow := &Client{hub: hub, send: make(chan []byte, 1), remoteAddr: "slow", log: logger.Default()}
	slow.send <- []byte("backlog")

	healthy := &Client{hub: hub, send: make(chan []byte, 4), remoteAddr: "healthy", log: logger.Default()}

	hub.register <- slow
	waitUntil(t, 500*time.Millisecond, registered(hub, slow), "slow client not registered in time")
	hub.register <- healthy
	waitUntil(t, 500*time.Millisecond, registered(hub, healthy), "healthy client not registered in time")

	hub.broadcast <- []byte("tick")

	waitUntil(t, 500*time.Millisecond, func() bool {
		return !registered(hub, slow)()
	}, "slow client was not evicted")

	require.True(t, registered(hub, healthy)(), "healthy client must survive")

	select {
	case got := <-healthy.send:
		assert.Equal(t, []byte("tick"), got)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("healthy client did not receive broadcast")
	}
}

func TestHubBroadcastBytesNeverBlocks(t *testing.T) {
	// Hub not running: the bounded queue fills, then drops.
	hub := NewHub(logger.Default(), HubConfig{SendBuf: 1, BroadcastBuf: 2})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			hub.BroadcastBytes([]byte("x"))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BroadcastBytes blocked on a full queue")
	}
}

func TestHubShutdownDisconnectsClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub(logger.Default(), HubConfig{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.Run(ctx)
	}()

	c := &Client{hub: hub, send: make(chan []byte, 4), remoteAddr: "c", log: logger.Default()}
	hub.register <- c
	waitUntil(t, 500*time.Millisecond, registered(hub, c), "client not registered in time")

	cancel()
	<-done

	// The send queue is closed on shutdown.
	_, open := <-c.send
	assert.False(t, open, "client send queue must be closed on shutdown")
}
