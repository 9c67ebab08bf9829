package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"codeberg.org/evhjem/hubdrive/internal/logger"
	"codeberg.org/evhjem/hubdrive/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is observational; any origin may subscribe.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Server exposes the telemetry feed on /ws/telemetry.
type Server struct {
	hub  *Hub
	log  logger.Logger
	http *http.Server

	// ctx is the run context; client pumps outlive their HTTP handler, so
	// they hang off this rather than the request context.
	ctx context.Context
}

func NewServer(addr string, hub *Hub, log logger.Logger) *Server {
	s := &Server{
		hub: hub,
		log: log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/telemetry", s.handleTelemetry)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Run serves until ctx is canceled. Serve errors are logged, never
// propagated into the control loop.
func (s *Server) Run(ctx context.Context) {
	s.ctx = ctx

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.http.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", s.http.Addr).Msg("Telemetry server listening")

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Error().Err(err).Msg("Telemetry server failed")
	}
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("Websocket upgrade failed")
		return
	}

	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	client := newClient(s.hub, conn, r.RemoteAddr, s.log)

	// The hub stops draining register once its run context is canceled; an
	// upgrade racing shutdown must not strand this handler.
	select {
	case s.hub.register <- client:
	case <-ctx.Done():
		_ = conn.Close()
		return
	}

	go client.writePump(ctx)
	go client.readPump(ctx)
}

// BroadcastSnapshot serializes a snapshot and hands it to the hub.
// Serialization failures are logged and the snapshot is dropped.
func (s *Server) BroadcastSnapshot(snapshot *telemetry.Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to serialize telemetry snapshot")
		return
	}

	s.hub.BroadcastBytes(payload)
}
