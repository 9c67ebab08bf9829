package control

import "math"

// ApplyDeadzone zeroes values whose magnitude is below the threshold and
// passes everything else through unchanged.
func ApplyDeadzone(value, threshold int) int {
	if abs(value) < threshold {
		return 0
	}

	return value
}

// NormalizeTrigger remaps a bipolar trigger axis (-100 at rest, 100 fully
// pulled) to 0..100 and applies the trigger deadzone.
func NormalizeTrigger(raw float64, threshold int) float64 {
	value := (raw + 100) / 2
	if math.Abs(value) < float64(threshold) {
		return 0
	}

	return value
}

// normalize applies deadzone shaping to a raw poll, producing the immutable
// per-tick sample the rest of the pipeline consumes.
func normalize(raw RawSample, stickDeadzone, triggerDeadzone int) Sample {
	return Sample{
		LeftX:        ApplyDeadzone(raw.LeftX, stickDeadzone),
		LeftY:        ApplyDeadzone(raw.LeftY, stickDeadzone),
		RightX:       ApplyDeadzone(raw.RightX, stickDeadzone),
		RightY:       ApplyDeadzone(raw.RightY, stickDeadzone),
		LeftTrigger:  NormalizeTrigger(raw.LeftTrigger, triggerDeadzone),
		RightTrigger: NormalizeTrigger(raw.RightTrigger, triggerDeadzone),
		Buttons:      raw.Buttons,
		CapturedAt:   raw.CapturedAt,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}

	if value > maxValue {
		return maxValue
	}

	return value
}
