package obs

// Meter receives counter increments and latency samples. Implementations may
// no-op or bridge to a metrics system.
type Meter interface {
	Counter(name string, value float64)
	Histogram(name string, value float64)
}

// NopMeter discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(string, float64)   {}
func (NopMeter) Histogram(string, float64) {}
