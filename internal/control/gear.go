package control

import "time"

// Gear is an index into the ordered gear sequence.
type Gear int

const (
	First Gear = iota
	Second
	Third

	gearCount = 3
)

var (
	forwardScale = [gearCount]float64{0.25, 0.5, 1.0}
	reverseScale = [gearCount]float64{-0.15, -0.25, -0.5}

	gearNames = [gearCount]string{"1st", "2nd", "3rd"}
)

// pulse intensity grows with the destination gear
var gearPulses = [gearCount]struct {
	low, high float64
	duration  time.Duration
}{
	{0.1, 0.1, 150 * time.Millisecond},
	{0.2, 0.2, 200 * time.Millisecond},
	{0.4, 0.4, 250 * time.Millisecond},
}

func (g Gear) String() string {
	if g < First || g > Third {
		return "unknown"
	}

	return gearNames[g]
}

// ForwardScale returns the forward throttle scale factor for the gear.
func (g Gear) ForwardScale() float64 {
	return forwardScale[g]
}

// ReverseScale returns the reverse throttle scale factor for the gear.
// The constant is negative.
func (g Gear) ReverseScale() float64 {
	return reverseScale[g]
}

// GearBox holds the current gear and performs clamped, edge-triggered
// shifts. The index never leaves [First, Third]; shifting past either end
// is a no-op.
type GearBox struct {
	current  Gear
	actuator FeedbackActuator
}

func NewGearBox(actuator FeedbackActuator) *GearBox {
	return &GearBox{
		current:  First,
		actuator: actuator,
	}
}

func (gb *GearBox) Current() Gear {
	return gb.current
}

// ShiftDown moves one gear down, clamped at First. Returns whether the
// gear changed.
func (gb *GearBox) ShiftDown() bool {
	return gb.shiftTo(Gear(clamp(int(gb.current)-1, int(First), int(Third))))
}

// ShiftUp moves one gear up, clamped at Third. Returns whether the
// gear changed.
func (gb *GearBox) ShiftUp() bool {
	return gb.shiftTo(Gear(clamp(int(gb.current)+1, int(First), int(Third))))
}

func (gb *GearBox) shiftTo(next Gear) bool {
	if next == gb.current {
		return false
	}

	gb.current = next

	if gb.actuator != nil {
		p := gearPulses[next]
		gb.actuator.Pulse(p.low, p.high, p.duration)
	}

	return true
}
