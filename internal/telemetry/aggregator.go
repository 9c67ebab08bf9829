package telemetry

import "time"

// PowerSample is one smoothed-power observation.
type PowerSample struct {
	At    time.Time
	Value float64
}

// Aggregator tracks the full-session average and a rolling, age-bounded
// average of smoothed power. The full average is kept as a running
// count and sum so memory stays bounded regardless of session length;
// the rolling window retains samples and evicts by wall-clock age.
// Timestamps are assumed monotonic non-decreasing.
type Aggregator struct {
	window time.Duration

	fullCount int64
	fullSum   float64

	recent []PowerSample
}

func NewAggregator(window time.Duration) *Aggregator {
	return &Aggregator{window: window}
}

// Add records one observation and returns the updated full-session and
// rolling-window averages.
func (a *Aggregator) Add(at time.Time, value float64) (avgFull, avgWindow float64) {
	a.fullCount++
	a.fullSum += value

	a.recent = append(a.recent, PowerSample{At: at, Value: value})
	a.evict(at)

	return a.AvgFull(), a.AvgWindow()
}

// AvgFull returns the arithmetic mean over the whole session, or 0 when
// nothing has been recorded.
func (a *Aggregator) AvgFull() float64 {
	if a.fullCount == 0 {
		return 0
	}

	return a.fullSum / float64(a.fullCount)
}

// AvgWindow returns the arithmetic mean over the samples currently
// retained in the window, or 0 when the window is empty.
func (a *Aggregator) AvgWindow() float64 {
	if len(a.recent) == 0 {
		return 0
	}

	var sum float64
	for _, s := range a.recent {
		sum += s.Value
	}

	return sum / float64(len(a.recent))
}

// WindowLen returns the number of samples currently retained.
func (a *Aggregator) WindowLen() int {
	return len(a.recent)
}

func (a *Aggregator) evict(now time.Time) {
	cutoff := now.Add(-a.window)

	i := 0
	for i < len(a.recent) && a.recent[i].At.Before(cutoff) {
		i++
	}

	if i > 0 {
		a.recent = append(a.recent[:0], a.recent[i:]...)
	}
}
