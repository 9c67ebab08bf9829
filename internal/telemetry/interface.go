package telemetry

import (
	"context"
	"time"

	"codeberg.org/evhjem/hubdrive/internal/control"
)

// Recorder persists per-tick snapshots of a drive session.
type Recorder interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Snapshot is the per-tick telemetry payload handed to the sinks. Field
// names follow the wire contract of the websocket feed.
type Snapshot struct {
	Power           int             `json:"power"`
	InstantPower    float64         `json:"instant_power"`
	AvgPowerFull    float64         `json:"avg_power_full"`
	AvgPowerWindow  float64         `json:"avg_power_window"`
	Gear            string          `json:"gear"`
	Mode            string          `json:"mode"`
	RawLeftTrigger  int             `json:"raw_left_trigger"`
	RawRightTrigger int             `json:"raw_right_trigger"`
	Angle           int             `json:"angle"`
	Braking         bool            `json:"brake"`
	LightsEnabled   bool            `json:"lights"`
	Buttons         control.Buttons `json:"buttons"`
	Timestamp       time.Time       `json:"timestamp"`
}
