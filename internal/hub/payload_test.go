package hub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/evhjem/hubdrive/internal/control"
	"codeberg.org/evhjem/hubdrive/internal/hub"
)

func TestDriveFrameLayout(t *testing.T) {
	frame := hub.DriveFrame(control.Command{Speed: 50, Angle: -100, LightCode: 0x04})

	assert.Len(t, frame, hub.FrameLen)
	assert.Equal(t,
		[]byte{0x0d, 0x00, 0x81, 0x36, 0x11, 0x51, 0x00, 0x03, 0x00},
		frame[:9], "fixed header must be bit-exact")
	assert.Equal(t, byte(50), frame[9])
	assert.Equal(t, byte(0x9c), frame[10], "signed angle -100 encodes as two's complement")
	assert.Equal(t, byte(0x04), frame[11])
	assert.Equal(t, byte(0x00), frame[12])
}

func TestDriveFrameNegativeSpeed(t *testing.T) {
	frame := hub.DriveFrame(control.Command{Speed: -40, Angle: 0, LightCode: 0x00})

	assert.Equal(t, byte(0xd8), frame[9])
	assert.Equal(t, byte(0x00), frame[10])
}

func TestDriveFrameZeroCommand(t *testing.T) {
	frame := hub.DriveFrame(control.Command{})

	assert.Equal(t,
		[]byte{0x0d, 0x00, 0x81, 0x36, 0x11, 0x51, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00},
		frame)
}
