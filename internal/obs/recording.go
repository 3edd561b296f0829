package obs

import "sync"

// CountingMeter aggregates measurements in memory. Handy in tests and for
// the occasional debug dump; production setups plug in their own Meter.
type CountingMeter struct {
	mu      sync.Mutex
	counts  map[string]float64
	samples map[string]int
}

func (m *CountingMeter) Counter(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]float64)
	}
	m.counts[name] += value
}

func (m *CountingMeter) Histogram(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.samples == nil {
		m.samples = make(map[string]int)
	}
	m.samples[name]++
}

// Count returns the accumulated total for a counter.
func (m *CountingMeter) Count(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}

// Samples returns how many values a histogram has received.
func (m *CountingMeter) Samples(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.samples[name]
}
