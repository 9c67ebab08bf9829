package control

// Light codes understood by the hub. Brake state and headlight state are
// combined into one byte.
const (
	LightsBrakeOn  byte = 0x01 // braking, headlights on
	LightsBrakeOff byte = 0x05 // braking, headlights off
	LightsOn       byte = 0x00 // driving, headlights on
	LightsOff      byte = 0x04 // driving, headlights off
)

// LightCode derives the light byte from the brake and headlight state.
func LightCode(isBraking, lightsEnabled bool) byte {
	if isBraking {
		if lightsEnabled {
			return LightsBrakeOn
		}

		return LightsBrakeOff
	}

	if lightsEnabled {
		return LightsOn
	}

	return LightsOff
}

// Lights tracks the headlight toggle, independent of braking state.
// Headlights start enabled.
type Lights struct {
	disabled bool
}

func (l *Lights) Enabled() bool {
	return !l.disabled
}

func (l *Lights) Toggle() {
	l.disabled = !l.disabled
}
