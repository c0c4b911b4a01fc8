package simulator

import (
	"math/rand"
	"time"
)

// Sample is one point in the synthetic time series.
type Sample struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is the ordered, append-only list of samples for a single run.
// Insertion order is chronological order. Not safe for concurrent use;
// consumers receive copies through Frame.
type Series struct {
	samples []Sample
}

// NewSeries returns an empty series with room for n samples.
func NewSeries(n int) *Series {
	if n < 0 {
		n = 0
	}
	return &Series{samples: make([]Sample, 0, n)}
}

// Append adds a sample to the end of the series.
func (s *Series) Append(sample Sample) {
	s.samples = append(s.samples, sample)
}

// Len returns the number of samples recorded.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.samples)
}

// Samples returns a copy of the recorded samples.
func (s *Series) Samples() []Sample {
	if s == nil {
		return nil
	}
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Values returns the sample values in order, ready for a graph renderer.
func (s *Series) Values() []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s.samples))
	for i, sample := range s.samples {
		out[i] = sample.Value
	}
	return out
}

// Last returns the most recent sample, or false when empty.
func (s *Series) Last() (Sample, bool) {
	if s.Len() == 0 {
		return Sample{}, false
	}
	return s.samples[len(s.samples)-1], true
}

// Range is a closed interval that bounded-random draws fall inside.
type Range struct {
	Min float64
	Max float64
}

// Draw returns a uniform value in [Min, Max).
func (r Range) Draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Reading and delta bounds for each metric.
var (
	TemperatureRange = Range{Min: 20, Max: 30}
	HumidityRange    = Range{Min: 40, Max: 60}
	CO2Range         = Range{Min: 400, Max: 500}
	SampleRange      = Range{Min: 0, Max: 100}

	TemperatureDelta = Range{Min: -2, Max: 2}
	HumidityDelta    = Range{Min: -5, Max: 5}
	CO2Delta         = Range{Min: -10, Max: 10}
)

// Metric is one labeled reading with a display delta.
type Metric struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
	Delta float64 `json:"delta"`
}

// Snapshot is the set of readings drawn for one iteration. It does not
// depend on any earlier snapshot.
type Snapshot struct {
	Temperature Metric `json:"temperature"`
	Humidity    Metric `json:"humidity"`
	CO2         Metric `json:"co2"`
}

// Metrics returns the three readings in display order.
func (s Snapshot) Metrics() []Metric {
	return []Metric{s.Temperature, s.Humidity, s.CO2}
}

// Frame is everything one iteration hands to its view.
type Frame struct {
	RunID     string   `json:"run_id,omitempty"`
	Iteration int      `json:"iteration"`
	Steps     int      `json:"steps"`
	Snapshot  Snapshot `json:"snapshot"`
	Sample    Sample   `json:"sample"`
	Series    []Sample `json:"series"`
	Progress  float64  `json:"progress"`
}

// Done reports whether this is the final frame of its run.
func (f Frame) Done() bool {
	return f.Iteration >= f.Steps
}
