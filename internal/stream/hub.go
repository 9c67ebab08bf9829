package stream

import (
	"context"
	"sync"

	"codeberg.org/evhjem/hubdrive/internal/logger"
)

const (
	defaultSendBuf      = 32
	defaultBroadcastBuf = 128
)

// Hub fans per-tick telemetry out to websocket subscribers. Delivery is
// best-effort: the broadcast queue and every per-client queue are bounded,
// a full queue drops, and a client that cannot keep up is disconnected.
// Nothing here ever blocks the control loop.
type Hub struct {
	log logger.Logger

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu      sync.Mutex
	clients map[*Client]struct{}

	sendBuf int
}

type HubConfig struct {
	// SendBuf is the per-client outbound queue size.
	SendBuf int

	// BroadcastBuf is the hub inbound broadcast queue size.
	BroadcastBuf int
}

// NewHub constructs a hub. Call Run(ctx) to start it.
func NewHub(log logger.Logger, cfg HubConfig) *Hub {
	sendBuf := cfg.SendBuf
	if sendBuf <= 0 {
		sendBuf = defaultSendBuf
	}
	bcastBuf := cfg.BroadcastBuf
	if bcastBuf <= 0 {
		bcastBuf = defaultBroadcastBuf
	}

	return &Hub{
		log:        log,
		broadcast:  make(chan []byte, bcastBuf),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		clients:    make(map[*Client]struct{}),
		sendBuf:    sendBuf,
	}
}

// Run processes hub events until ctx is canceled, then disconnects all
// clients.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Info().Str("remote_addr", c.remoteAddr).Int("clients", n).Msg("Telemetry client connected")

		case c := <-h.unregister:
			h.removeClient(c, "disconnect")

		case msg := <-h.broadcast:
			// Collect slow clients while holding the lock, evict after.
			var slow []*Client

			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.Unlock()

			for _, c := range slow {
				h.removeClient(c, "slow_client")
			}
		}
	}
}

// BroadcastBytes enqueues a serialized snapshot for fan-out. It never
// blocks; if the hub queue is full the message is dropped.
func (h *Hub) BroadcastBytes(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Int("bytes", len(msg)).Msg("Telemetry broadcast queue full, dropping")
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		safeCloseChan(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) removeClient(c *Client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		// Closing send signals writePump to exit.
		safeCloseChan(c.send)

		h.log.Info().
			Str("remote_addr", c.remoteAddr).
			Str("reason", reason).
			Int("clients", n).
			Msg("Telemetry client disconnected")
	}
}

func safeCloseChan(ch chan []byte) {
	defer func() {
		_ = recover() // ignore "close of closed channel"
	}()
	close(ch)
}
