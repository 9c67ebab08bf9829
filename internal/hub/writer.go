package hub

import (
	"sync"
	"time"

	"codeberg.org/evhjem/hubdrive/internal/control"
	"codeberg.org/evhjem/hubdrive/internal/logger"
)

const (
	defaultQueueDepth = 32
	calibrationDelay  = 100 * time.Millisecond
)

// Writer decouples the control loop from transport latency. A single
// dedicated goroutine drains one bounded in-order queue, so successive
// commands reach the transport in the order they were produced while the
// loop never blocks on a write. A full queue drops the newest command; the
// final safe frame on Close is written after the queue has drained and is
// never dropped.
type Writer struct {
	transport Transport

	frames chan []byte
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

func NewWriter(transport Transport, depth int) *Writer {
	if depth <= 0 {
		depth = defaultQueueDepth
	}

	w := &Writer{
		transport: transport,
		frames:    make(chan []byte, depth),
		done:      make(chan struct{}),
	}

	go w.run()

	return w
}

func (w *Writer) run() {
	defer close(w.done)

	for frame := range w.frames {
		if err := w.transport.Write(frame); err != nil {
			// Non-fatal: log, drop the command, keep draining.
			logger.Warn().Err(err).Msg("Drive command write failed")
		}
	}
}

// Drive enqueues a drive command. Returns false if the queue was full and
// the command was dropped.
func (w *Writer) Drive(cmd control.Command) bool {
	select {
	case w.frames <- DriveFrame(cmd):
		return true
	default:
		logger.Warn().
			Int("speed", cmd.Speed).
			Int("angle", cmd.Angle).
			Msg("Write queue full, dropping drive command")
		return false
	}
}

// Calibrate runs the steering calibration sequence: two fixed frames, each
// followed by a short settle delay. Must be called before the control loop
// starts.
func (w *Writer) Calibrate() error {
	for _, frame := range calibrationFrames {
		if err := w.transport.Write(frame); err != nil {
			return err
		}
		time.Sleep(calibrationDelay)
	}

	return nil
}

// Close drains the queue, writes the final stop frame (zero speed, zero
// angle, lights off) best-effort, and releases the transport.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		close(w.frames)
		<-w.done

		stop := control.Command{Speed: 0, Angle: 0, LightCode: control.LightsOff}
		if err := w.transport.Write(DriveFrame(stop)); err != nil {
			logger.Warn().Err(err).Msg("Final stop command write failed")
		}

		w.closeErr = w.transport.Close()
	})

	return w.closeErr
}
