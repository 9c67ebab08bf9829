package status

import (
	"context"
	"time"

	"codeberg.org/evhjem/hubdrive/internal/logger"
	"codeberg.org/evhjem/hubdrive/internal/telemetry"
)

const defaultInterval = time.Second

// State is what the renderer shows: the latest telemetry snapshot plus
// connection status. Purely observational, no feedback into control.
type State struct {
	Snapshot  *telemetry.Snapshot
	Connected bool
	Simulated bool
}

// Renderer logs a concise status line at its own cadence, fed through a
// depth-1 latest-value slot: a new state overwrites any undelivered
// previous one, so the control loop never queues behind a slow consumer.
type Renderer struct {
	slot     chan State
	interval time.Duration
}

func NewRenderer(interval time.Duration) *Renderer {
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Renderer{
		slot:     make(chan State, 1),
		interval: interval,
	}
}

// Offer hands the renderer a new state without blocking. An undelivered
// previous state is replaced.
func (r *Renderer) Offer(state State) {
	for {
		select {
		case r.slot <- state:
			return
		default:
		}

		select {
		case <-r.slot:
		default:
		}
	}
}

// Run logs the most recent state at the renderer cadence until ctx is
// canceled.
func (r *Renderer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var (
		last    State
		hasLast bool
	)

	for {
		select {
		case <-ctx.Done():
			return

		case state := <-r.slot:
			last = state
			hasLast = true

		case <-ticker.C:
			if hasLast {
				render(last)
			}
		}
	}
}

func render(state State) {
	s := state.Snapshot
	if s == nil {
		return
	}

	conn := "disconnected"
	switch {
	case state.Simulated:
		conn = "simulated"
	case state.Connected:
		conn = "connected"
	}

	logger.Info().
		Str("gear", s.Gear).
		Str("mode", s.Mode).
		Int("power", s.Power).
		Int("angle", s.Angle).
		Float64("avg_window", s.AvgPowerWindow).
		Bool("brake", s.Braking).
		Bool("lights", s.LightsEnabled).
		Str("hub", conn).
		Msg("")
}
