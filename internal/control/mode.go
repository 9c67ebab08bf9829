package control

// Mode selects which smoothing-rate pair is active.
type Mode int

const (
	Comfort Mode = iota
	Sport
)

// Smoothing factors per mode. Throttle buildup is deliberately slower than
// the drop on brake; Sport tightens both.
var (
	accelAlpha = map[Mode]float64{
		Comfort: 0.01,
		Sport:   0.15,
	}
	brakeAlpha = map[Mode]float64{
		Comfort: 0.15,
		Sport:   0.35,
	}
)

func (m Mode) String() string {
	if m == Sport {
		return "Sport"
	}

	return "Comfort"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Comfort {
		return Sport
	}

	return Comfort
}

// AccelAlpha returns the smoothing factor used when power is rising.
func (m Mode) AccelAlpha() float64 {
	return accelAlpha[m]
}

// BrakeAlpha returns the smoothing factor used when power is falling or
// holding steady.
func (m Mode) BrakeAlpha() float64 {
	return brakeAlpha[m]
}
