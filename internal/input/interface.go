package input

import (
	"time"

	"codeberg.org/evhjem/hubdrive/internal/control"
)

// Provider delivers gamepad samples to the control loop. Sample must not
// block beyond a bounded polling cost; Rumble is fire-and-forget.
type Provider interface {
	Sample() control.RawSample
	Rumble(low, high float64, duration time.Duration)
	Close() error
}
