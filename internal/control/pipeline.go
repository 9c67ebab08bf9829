package control

import "codeberg.org/evhjem/hubdrive/internal/logger"

// Config holds the pipeline calibration values.
type Config struct {
	StickDeadzone   int
	TriggerDeadzone int
	SteeringLimit   int
}

// Pipeline owns all persistent control state: gear, mode, headlights,
// button edge detection, the smoothing accumulator and the dispatcher's
// last-sent snapshot. One Tick runs the whole sample-to-command sequence
// with no suspension points, so edge detection always compares against the
// exact previous tick.
type Pipeline struct {
	cfg Config

	gears      *GearBox
	mode       Mode
	lights     Lights
	edges      EdgeDetector
	smoother   Smoother
	steering   SteeringMapper
	dispatcher *Dispatcher
}

func NewPipeline(cfg Config, actuator FeedbackActuator) *Pipeline {
	lights := Lights{}

	return &Pipeline{
		cfg:        cfg,
		gears:      NewGearBox(actuator),
		mode:       Comfort,
		lights:     lights,
		steering:   NewSteeringMapper(cfg.SteeringLimit),
		dispatcher: NewDispatcher(LightCode(false, lights.Enabled())),
	}
}

// Tick processes one raw gamepad poll and returns the per-tick frame plus
// the command to emit, if the dispatcher decided one is due.
func (p *Pipeline) Tick(raw RawSample) (Frame, Command, bool) {
	sample := normalize(raw, p.cfg.StickDeadzone, p.cfg.TriggerDeadzone)
	edges := p.edges.Update(sample.Buttons)

	if edges.X {
		p.mode = p.mode.Toggle()
		logger.Info().Str("mode", p.mode.String()).Msg("Mode switched")
	}

	if edges.LB {
		if p.gears.ShiftDown() {
			logger.Info().Str("gear", p.gears.Current().String()).Msg("Gear changed")
		}
	}
	if edges.RB {
		if p.gears.ShiftUp() {
			logger.Info().Str("gear", p.gears.Current().String()).Msg("Gear changed")
		}
	}

	if edges.Y {
		p.lights.Toggle()
		logger.Info().Bool("enabled", p.lights.Enabled()).Msg("Lights toggled")
	}

	resolution := Resolve(
		sample.RightTrigger,
		sample.LeftTrigger,
		sample.Buttons.A,
		p.gears.Current(),
		p.cfg.TriggerDeadzone,
	)

	power := p.smoother.Update(resolution.AdjustedSpeed, p.mode)
	steering := p.steering.Map(sample.LeftX)
	light := LightCode(resolution.FullBrake, p.lights.Enabled())

	cmd, emit := p.dispatcher.Decide(resolution.FullBrake, power, steering, light)

	frame := Frame{
		Sample:        sample,
		FullBrake:     resolution.FullBrake,
		RawThrottle:   resolution.RawThrottle,
		AdjustedSpeed: resolution.AdjustedSpeed,
		Power:         power,
		Steering:      steering,
		LightCode:     light,
		Gear:          p.gears.Current(),
		Mode:          p.mode,
		LightsEnabled: p.lights.Enabled(),
	}

	return frame, cmd, emit
}

// SmoothedPower returns the raw smoothing accumulator.
func (p *Pipeline) SmoothedPower() float64 {
	return p.smoother.Value()
}

// Gear returns the current gear.
func (p *Pipeline) Gear() Gear {
	return p.gears.Current()
}

// Mode returns the current drive mode.
func (p *Pipeline) Mode() Mode {
	return p.mode
}
