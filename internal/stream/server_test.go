package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"codeberg.org/evhjem/hubdrive/internal/logger"
)

func TestServerHandlerReturnsWhenHubStopped(t *testing.T) {
	hub := NewHub(logger.Default(), HubConfig{})

	// A stopped hub no longer drains register. Fill the channel so the
	// handler cannot complete registration.
	for i := 0; i < cap(hub.register); i++ {
		hub.register <- &Client{hub: hub, send: make(chan []byte, 1)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewServer(":0", hub, logger.Default())
	s.ctx = ctx

	ts := httptest.NewServer(http.HandlerFunc(s.handleTelemetry))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/telemetry"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The handler must drop the connection instead of blocking forever on
	// registration.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err, "connection must be closed when the hub is stopped")
}
