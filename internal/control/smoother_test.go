package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/evhjem/hubdrive/internal/control"
)

func TestSmootherComfortAccelConvergence(t *testing.T) {
	var sm control.Smoother

	// First tick: 0 + (15-0)*0.01 = 0.15, truncates to 0.
	got := sm.Update(15, control.Comfort)
	assert.Equal(t, 0, got)
	assert.InDelta(t, 0.15, sm.Value(), 1e-9)

	// The accumulator approaches the target monotonically and never
	// overshoots it.
	prev := sm.Value()
	for i := 0; i < 2000; i++ {
		sm.Update(15, control.Comfort)
		assert.GreaterOrEqual(t, sm.Value(), prev, "accumulator must not fall while target is above it")
		assert.LessOrEqual(t, sm.Value(), 15.0, "accumulator must not overshoot the target")
		prev = sm.Value()
	}

	assert.InDelta(t, 15, sm.Value(), 0.01)
}

func TestSmootherBrakeRespondsFaster(t *testing.T) {
	var up, down control.Smoother

	up.Update(100, control.Comfort)
	rose := up.Value()

	down.Update(100, control.Comfort) // seed
	seeded := down.Value()
	down.Update(0, control.Comfort)
	fell := seeded - down.Value()

	// Comfort: alpha 0.01 up vs 0.15 down.
	assert.Greater(t, fell/seeded, rose/100, "drop rate should exceed buildup rate")
}

func TestSmootherEqualTargetUsesBrakeBranch(t *testing.T) {
	var sm control.Smoother

	// Drive the accumulator up, then feed a falling target: the brake
	// alpha (0.15 in Comfort) applies.
	sm.Update(100, control.Sport) // 15.0
	got := sm.Update(0, control.Comfort)

	// 15 - 15*0.15 = 12.75, truncated to 12.
	assert.Equal(t, 12, got)
	assert.InDelta(t, 12.75, sm.Value(), 1e-9)

	// An exactly equal target leaves the accumulator unchanged.
	before := sm.Value()
	sm.Update(before, control.Comfort)
	assert.InDelta(t, before, sm.Value(), 1e-9)
}

func TestSmootherTruncatesTowardZero(t *testing.T) {
	var sm control.Smoother

	// Reverse direction: accumulator goes negative, int() truncates
	// toward zero, so -0.9 reports as 0 and -12.75 as -12.
	got := sm.Update(-100, control.Sport) // -35.0
	assert.Equal(t, -35, got)

	got = sm.Update(-90, control.Sport)
	assert.Less(t, got, 0)
	assert.Equal(t, int(sm.Value()), got)
}
