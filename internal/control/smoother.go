package control

// Smoother is the asymmetric exponential filter between the resolved
// throttle and the power actually sent to the vehicle. The accumulator
// persists across ticks and is never reset; a zero target drives it back
// toward zero over repeated ticks.
type Smoother struct {
	s float64
}

// Update advances the accumulator toward target and returns the integer
// command value, truncated toward zero. A strictly rising target uses the
// accel alpha; a falling or equal target uses the brake alpha, so braking
// responds faster than throttle buildup.
func (sm *Smoother) Update(target float64, mode Mode) int {
	alpha := mode.BrakeAlpha()
	if target > sm.s {
		alpha = mode.AccelAlpha()
	}

	sm.s += (target - sm.s) * alpha

	return int(sm.s)
}

// Value returns the raw accumulator.
func (sm *Smoother) Value() float64 {
	return sm.s
}
