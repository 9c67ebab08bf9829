package control

const (
	// innerDeadzone is the vehicle's own deadzone: commands with a smaller
	// non-zero magnitude stall the motor, so they snap outward to ±10.
	innerDeadzone = 10

	// fullBrakeThreshold is the left-trigger travel that counts as a full
	// brake while driving forward.
	fullBrakeThreshold = 95
)

// Resolution is the resolved throttle state for one tick.
type Resolution struct {
	FullBrake     bool
	RawThrottle   float64
	AdjustedSpeed float64
}

// Resolve turns the trigger pair and brake button into a signed, gear-scaled
// throttle. Forward commands are positive, reverse commands are negative;
// the reverse scale table stores negative constants and the sign is restored
// here, so a reverse command comes out as a negative AdjustedSpeed.
func Resolve(forward, brake float64, brakeHeld bool, gear Gear, triggerDeadzone int) Resolution {
	var r Resolution

	if forward > float64(triggerDeadzone) {
		// Moving forward: the left trigger subtracts as a proportional brake.
		if brake > fullBrakeThreshold || brakeHeld {
			r.FullBrake = true
		} else {
			r.RawThrottle = forward - brake
			if r.RawThrottle < 0 {
				r.RawThrottle = 0
			}
		}
	} else {
		// No forward input: the left trigger drives reverse unless the
		// brake button overrides.
		if brakeHeld {
			r.FullBrake = true
		} else {
			r.RawThrottle = -brake
		}
	}

	switch {
	case r.FullBrake:
		r.AdjustedSpeed = 0
	case r.RawThrottle >= 0:
		r.AdjustedSpeed = r.RawThrottle * gear.ForwardScale()
	default:
		r.AdjustedSpeed = -(r.RawThrottle * gear.ReverseScale())
	}

	r.AdjustedSpeed = enforceInnerDeadzone(r.AdjustedSpeed)

	return r
}

func enforceInnerDeadzone(power float64) float64 {
	if power == 0 {
		return 0
	}

	if power > 0 && power < innerDeadzone {
		return innerDeadzone
	}

	if power < 0 && power > -innerDeadzone {
		return -innerDeadzone
	}

	return power
}
