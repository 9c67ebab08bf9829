package hub_test

import (
	"encoding/hex"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/evhjem/hubdrive/internal/control"
	"codeberg.org/evhjem/hubdrive/internal/hub"
	"codeberg.org/evhjem/hubdrive/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init(false, false, false)
	os.Exit(m.Run())
}

// captureTransport records frames in write order.
type captureTransport struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (c *captureTransport) Write(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]byte, len(frame))
	copy(cp, frame)
	c.frames = append(c.frames, cp)
	return nil
}

func (c *captureTransport) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *captureTransport) snapshot() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.frames))
	copy(out, c.frames)
	return out
}

func TestWriterPreservesCommandOrder(t *testing.T) {
	transport := &captureTransport{}
	w := hub.NewWriter(transport, 16)

	for speed := 1; speed <= 10; speed++ {
		require.True(t, w.Drive(control.Command{Speed: speed}))
	}
	require.NoError(t, w.Close())

	frames := transport.snapshot()
	// 10 drive frames plus the final stop frame.
	require.Len(t, frames, 11)
	for i := 0; i < 10; i++ {
		assert.Equal(t, byte(i+1), frames[i][9], "commands must reach the transport in production order")
	}
}

func TestWriterCloseSendsFinalStopFrame(t *testing.T) {
	transport := &captureTransport{}
	w := hub.NewWriter(transport, 4)

	require.True(t, w.Drive(control.Command{Speed: 42, Angle: 17, LightCode: 0x00}))
	require.NoError(t, w.Close())

	frames := transport.snapshot()
	require.NotEmpty(t, frames)

	final := frames[len(frames)-1]
	want := hub.DriveFrame(control.Command{Speed: 0, Angle: 0, LightCode: control.LightsOff})
	assert.Equal(t, hex.EncodeToString(want), hex.EncodeToString(final))
	assert.True(t, transport.closed, "transport must be released after the stop frame")
}

func TestWriterCloseIsIdempotent(t *testing.T) {
	transport := &captureTransport{}
	w := hub.NewWriter(transport, 4)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	// Only the single final stop frame was written.
	assert.Len(t, transport.snapshot(), 1)
}

func TestWriterCalibrationSequence(t *testing.T) {
	transport := &captureTransport{}
	w := hub.NewWriter(transport, 4)
	defer w.Close()

	require.NoError(t, w.Calibrate())

	frames := transport.snapshot()
	require.Len(t, frames, 2)
	assert.Equal(t, "0d008136115100030000001000", hex.EncodeToString(frames[0]))
	assert.Equal(t, "0d008136115100030000000800", hex.EncodeToString(frames[1]))
}

// blockingTransport stalls writes until released, for exercising the
// bounded queue.
type blockingTransport struct {
	release chan struct{}
	mu      sync.Mutex
	writes  int
}

func (b *blockingTransport) Write([]byte) error {
	<-b.release
	b.mu.Lock()
	b.writes++
	b.mu.Unlock()
	return nil
}

func (b *blockingTransport) Close() error { return nil }

func TestWriterDropsWhenQueueFull(t *testing.T) {
	transport := &blockingTransport{release: make(chan struct{})}
	w := hub.NewWriter(transport, 2)

	// One command is pulled by the writer goroutine and stalls in Write;
	// two more fill the queue. Give the goroutine a moment to pull.
	require.True(t, w.Drive(control.Command{Speed: 1}))
	time.Sleep(50 * time.Millisecond)
	require.True(t, w.Drive(control.Command{Speed: 2}))
	require.True(t, w.Drive(control.Command{Speed: 3}))

	// Queue is now full: the next command is dropped, not queued.
	assert.False(t, w.Drive(control.Command{Speed: 4}))

	close(transport.release)
	require.NoError(t, w.Close())
}
