package stream

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"codeberg.org/evhjem/hubdrive/internal/logger"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 20 * time.Second
)

// Client is one websocket subscriber with its own buffered send queue, so
// a slow peer never blocks the hub or the other subscribers.
type Client struct {
	hub *Hub

	conn *websocket.Conn
	send chan []byte

	remoteAddr string
	log        logger.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, remoteAddr string, log logger.Logger) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, hub.sendBuf),
		remoteAddr: remoteAddr,
		log:        log,
	}
}

// writePump writes queued messages to the websocket. It exits on write
// error or when the send queue is closed by the hub.
func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Queue closed: hub is disconnecting us.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Debug().Str("remote_addr", c.remoteAddr).Err(err).Msg("Telemetry write pump exiting")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.Debug().Str("remote_addr", c.remoteAddr).Err(err).Msg("Telemetry ping failed")
				return
			}
		}
	}
}

// readPump reads and discards incoming messages to detect disconnects and
// service control frames. On exit the client is unregistered.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-ctx.Done():
		}
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
