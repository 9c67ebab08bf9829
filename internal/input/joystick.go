package input

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"codeberg.org/evhjem/hubdrive/internal/control"
	"codeberg.org/evhjem/hubdrive/internal/errors"
	"codeberg.org/evhjem/hubdrive/internal/logger"
)

// Linux joystick API (linux/joystick.h): fixed 8-byte events on
// /dev/input/jsN.
const (
	jsEventSize = 8

	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80

	axisMax = 32767
)

// Axis and button numbers for an XInput-style pad.
const (
	axisLeftX = iota
	axisLeftY
	axisRightX
	axisRightY
	axisLeftTrigger
	axisRightTrigger

	axisCount
)

const (
	buttonA = iota
	buttonB
	buttonX
	buttonY
	buttonLB
	buttonRB

	buttonCount
)

// padState is the latest decoded device state, maintained by the reader
// goroutine and snapshotted by Sample.
type padState struct {
	axes    [axisCount]int16
	buttons [buttonCount]bool
}

// Joystick reads a /dev/input/jsN device. A background goroutine applies
// events to the latest state; Sample never blocks on device I/O.
type Joystick struct {
	fd   int
	path string

	mu    sync.Mutex
	state padState

	closeOnce sync.Once
}

// Open finds the first available joystick device. Zero devices is fatal
// for the caller: the control loop cannot run without input.
func Open() (*Joystick, error) {
	errFactory := errors.New()

	for i := 0; i < 4; i++ {
		path := fmt.Sprintf("/dev/input/js%d", i)
		fd, err := unix.Open(path, unix.O_RDONLY, 0)
		if err != nil {
			continue
		}

		// Triggers rest at the negative end of their axis. The kernel
		// reports initial state via init events, but start from rest so a
		// quiet pad reads neutral either way.
		js := &Joystick{fd: fd, path: path}
		js.state.axes[axisLeftTrigger] = -axisMax
		js.state.axes[axisRightTrigger] = -axisMax

		go js.readLoop()

		logger.Info().Str("device", path).Msg("Joystick opened")

		return js, nil
	}

	return nil, errFactory.New(ErrNoDevice)
}

func (j *Joystick) readLoop() {
	buf := make([]byte, jsEventSize)

	for {
		n, err := unix.Read(j.fd, buf)
		if err != nil || n != jsEventSize {
			if err == unix.EINTR {
				continue
			}
			// Closed fd or unplugged device ends the loop.
			logger.Debug().Str("device", j.path).Msg("Joystick read loop exiting")
			return
		}

		// struct js_event { __u32 time; __s16 value; __u8 type; __u8 number; }
		value := int16(binary.LittleEndian.Uint16(buf[4:6]))
		eventType := buf[6] &^ jsEventInit
		number := buf[7]

		j.mu.Lock()
		switch eventType {
		case jsEventAxis:
			if int(number) < axisCount {
				j.state.axes[number] = value
			}
		case jsEventButton:
			if int(number) < buttonCount {
				j.state.buttons[number] = value != 0
			}
		}
		j.mu.Unlock()
	}
}

// Sample snapshots the latest pad state. Stick axes come out as -100..100
// (left Y inverted so forward is positive), triggers stay in their bipolar
// native range for the pipeline to remap.
func (j *Joystick) Sample() control.RawSample {
	j.mu.Lock()
	state := j.state
	j.mu.Unlock()

	return control.RawSample{
		LeftX:        scaleAxis(state.axes[axisLeftX]),
		LeftY:        -scaleAxis(state.axes[axisLeftY]),
		RightX:       scaleAxis(state.axes[axisRightX]),
		RightY:       -scaleAxis(state.axes[axisRightY]),
		LeftTrigger:  float64(state.axes[axisLeftTrigger]) * 100 / axisMax,
		RightTrigger: float64(state.axes[axisRightTrigger]) * 100 / axisMax,
		Buttons: control.Buttons{
			A:  state.buttons[buttonA],
			B:  state.buttons[buttonB],
			X:  state.buttons[buttonX],
			Y:  state.buttons[buttonY],
			LB: state.buttons[buttonLB],
			RB: state.buttons[buttonRB],
		},
		CapturedAt: time.Now(),
	}
}

// Rumble is best-effort. The js interface has no force-feedback path;
// that would need the matching /dev/input/event node, so this logs and
// returns.
func (j *Joystick) Rumble(low, high float64, duration time.Duration) {
	logger.Debug().
		Float64("low", low).
		Float64("high", high).
		Dur("duration", duration).
		Msg("Rumble requested (unsupported on js interface)")
}

func (j *Joystick) Close() error {
	var err error
	j.closeOnce.Do(func() {
		err = unix.Close(j.fd)
	})

	return err
}

func scaleAxis(value int16) int {
	return int(math.Round(float64(value) * 100 / axisMax))
}
