package control

// Dispatcher decides, once per tick, whether the newly computed command is
// worth sending to the hub. Brake transitions are always honored
// immediately; otherwise a command is only emitted when a tracked field
// changed, so idempotent re-sends are suppressed.
type Dispatcher struct {
	lastSent   Command
	wasBraking bool
}

func NewDispatcher(initialLight byte) *Dispatcher {
	return &Dispatcher{
		lastSent: Command{Speed: 0, Angle: 0, LightCode: initialLight},
	}
}

// Decide returns the command to emit, if any. At most one command is
// emitted per tick. lastSent and the brake edge state are updated from the
// computed values regardless of whether anything was emitted, so the next
// tick always compares against the true latest state.
func (d *Dispatcher) Decide(fullBrake bool, power, steering int, light byte) (Command, bool) {
	var (
		cmd  Command
		emit bool
	)

	switch {
	case fullBrake && !d.wasBraking:
		// Brake engaged: force zero speed out immediately.
		cmd = Command{Speed: 0, Angle: steering, LightCode: light}
		emit = true
	case !fullBrake && d.wasBraking:
		// Brake released: restore the smoothed power immediately.
		cmd = Command{Speed: power, Angle: steering, LightCode: light}
		emit = true
	case power != d.lastSent.Speed || steering != d.lastSent.Angle || light != d.lastSent.LightCode:
		cmd = Command{Speed: power, Angle: steering, LightCode: light}
		emit = true
	}

	d.lastSent = Command{Speed: power, Angle: steering, LightCode: light}
	d.wasBraking = fullBrake

	return cmd, emit
}

// LastSent returns the previous-value side of the change detection.
func (d *Dispatcher) LastSent() Command {
	return d.lastSent
}
