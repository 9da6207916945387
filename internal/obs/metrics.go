package obs

import "sync"

// Label is a key/value pair attached to measurements.
type Label struct {
	Key   string
	Value string
}

// Meter is a very small interface for emitting counters/histograms.
// Implementations may no-op or bridge to a metrics system.
type Meter interface {
	Counter(name string, value float64, labels ...Label)
	Histogram(name string, value float64, labels ...Label)
}

// NopMeter is a Meter that discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(name string, value float64, labels ...Label)   {}
func (NopMeter) Histogram(name string, value float64, labels ...Label) {}

// MapMeter accumulates measurements in memory, keyed by metric name.
// Labels are ignored for aggregation. Safe for concurrent use; meant
// for tests and ad hoc inspection, not production export.
type MapMeter struct {
	mu      sync.Mutex
	counts  map[string]float64
	samples map[string][]float64
}

func (m *MapMeter) Counter(name string, value float64, labels ...Label) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]float64)
	}
	m.counts[name] += value
}

func (m *MapMeter) Histogram(name string, value float64, labels ...Label) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.samples == nil {
		m.samples = make(map[string][]float64)
	}
	m.samples[name] = append(m.samples[name], value)
}

// Count returns the accumulated counter value for name.
func (m *MapMeter) Count(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}

// Samples returns a copy of the histogram observations for name.
func (m *MapMeter) Samples(name string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.samples[name]))
	copy(out, m.samples[name])
	return out
}
