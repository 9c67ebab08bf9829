package telemetry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"codeberg.org/evhjem/hubdrive/internal/telemetry"
)

func TestAggregatorEmptyAveragesAreZero(t *testing.T) {
	a := telemetry.NewAggregator(120 * time.Second)

	assert.Zero(t, a.AvgFull())
	assert.Zero(t, a.AvgWindow())
}

func TestAggregatorFullAverage(t *testing.T) {
	a := telemetry.NewAggregator(120 * time.Second)
	base := time.Now()

	a.Add(base, 10)
	a.Add(base.Add(time.Second), 20)
	avgFull, avgWindow := a.Add(base.Add(2*time.Second), 30)

	assert.InDelta(t, 20, avgFull, 0.001)
	assert.InDelta(t, 20, avgWindow, 0.001)
}

func TestAggregatorWindowEvictsOldSamples(t *testing.T) {
	a := telemetry.NewAggregator(120 * time.Second)
	base := time.Now()

	a.Add(base, 100)
	a.Add(base.Add(time.Second), 100)

	// 122 seconds later both early samples are strictly older than the
	// cutoff and get evicted.
	_, avgWindow := a.Add(base.Add(122*time.Second), 10)

	assert.Equal(t, 1, a.WindowLen())
	assert.InDelta(t, 10, avgWindow, 0.001)

	// The full-session average still includes everything.
	assert.InDelta(t, 70, a.AvgFull(), 0.001)
}

func TestAggregatorWindowAverageWithinSampleBounds(t *testing.T) {
	a := telemetry.NewAggregator(10 * time.Second)
	base := time.Now()

	values := []float64{5, 80, -30, 42, 0, 17}
	for i, v := range values {
		a.Add(base.Add(time.Duration(i)*time.Second), v)
	}

	avg := a.AvgWindow()
	assert.GreaterOrEqual(t, avg, -30.0)
	assert.LessOrEqual(t, avg, 80.0)
}

func TestAggregatorKeepsSampleOnWindowBoundary(t *testing.T) {
	a := telemetry.NewAggregator(120 * time.Second)
	base := time.Now()

	a.Add(base, 40)

	// Exactly window-aged samples are retained; only strictly older ones
	// are evicted.
	_, avgWindow := a.Add(base.Add(120*time.Second), 20)

	assert.Equal(t, 2, a.WindowLen())
	assert.InDelta(t, 30, avgWindow, 0.001)
}
