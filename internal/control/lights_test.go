package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/evhjem/hubdrive/internal/control"
)

func TestLightCodeTable(t *testing.T) {
	tests := []struct {
		braking bool
		enabled bool
		want    byte
	}{
		{true, true, 0x01},
		{true, false, 0x05},
		{false, true, 0x00},
		{false, false, 0x04},
	}

	for _, tt := range tests {
		got := control.LightCode(tt.braking, tt.enabled)
		assert.Equalf(t, tt.want, got, "LightCode(%v, %v)", tt.braking, tt.enabled)
	}
}

func TestLightsStartEnabledAndToggle(t *testing.T) {
	var l control.Lights

	assert.True(t, l.Enabled())
	l.Toggle()
	assert.False(t, l.Enabled())
	l.Toggle()
	assert.True(t, l.Enabled())
}
