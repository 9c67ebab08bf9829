package control

import "time"

// Buttons is the named button state captured with a sample.
type Buttons struct {
	A  bool `json:"A"`
	B  bool `json:"B"`
	X  bool `json:"X"`
	Y  bool `json:"Y"`
	LB bool `json:"LB"`
	RB bool `json:"RB"`
}

// RawSample is one gamepad poll before deadzone shaping. Stick axes are
// -100..100, triggers are in the bipolar native range -100..100.
type RawSample struct {
	LeftX, LeftY   int
	RightX, RightY int
	LeftTrigger    float64
	RightTrigger   float64
	Buttons        Buttons
	CapturedAt     time.Time
}

// Sample is a RawSample after deadzone shaping: sticks -100..100 with the
// stick deadzone applied, triggers remapped to 0..100 with the trigger
// deadzone applied. Immutable for the tick.
type Sample struct {
	LeftX, LeftY   int
	RightX, RightY int
	LeftTrigger    float64
	RightTrigger   float64
	Buttons        Buttons
	CapturedAt     time.Time
}

// Command is a drive command for the hub transport.
type Command struct {
	Speed     int
	Angle     int
	LightCode byte
}

// FeedbackActuator delivers a haptic pulse on the controller. Fire-and-forget.
type FeedbackActuator interface {
	Pulse(low, high float64, duration time.Duration)
}

// Frame is the per-tick pipeline result handed to telemetry and rendering.
// Everything here is transient and recomputed each tick.
type Frame struct {
	Sample        Sample
	FullBrake     bool
	RawThrottle   float64
	AdjustedSpeed float64
	Power         int
	Steering      int
	LightCode     byte
	Gear          Gear
	Mode          Mode
	LightsEnabled bool
}
