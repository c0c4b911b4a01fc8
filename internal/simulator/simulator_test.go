package simulator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	dderrors "github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every call.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// sleepRecorder counts pauses and returns instantly unless ctx is done.
type sleepRecorder struct {
	mu     sync.Mutex
	pauses []time.Duration
}

func (s *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.pauses = append(s.pauses, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *sleepRecorder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pauses)
}

func newTestSimulator(seed int64) (*Simulator, *sleepRecorder) {
	rec := &sleepRecorder{}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), step: time.Second}

	sim := NewSeeded(seed)
	sim.Clock = clock.Now
	sim.Sleep = rec.Sleep
	return sim, rec
}

func collect(frames *[]Frame) Sink {
	return SinkFunc(func(_ context.Context, f Frame) error {
		*frames = append(*frames, f)
		return nil
	})
}

func TestRun_SeriesLengthMatchesSteps(t *testing.T) {
	for _, steps := range []int{0, 1, 2, 10, 100} {
		sim, rec := newTestSimulator(1)
		var frames []Frame

		series, err := sim.Run(context.Background(), steps, 100*time.Millisecond, collect(&frames))
		require.NoError(t, err)

		assert.Equal(t, steps, series.Len(), "steps=%d", steps)
		assert.Len(t, frames, steps)
		assert.Equal(t, steps, rec.count(), "pause after every iteration, the last included")
	}
}

func TestRun_ZeroStepsReturnsImmediately(t *testing.T) {
	sim, rec := newTestSimulator(1)
	called := false

	series, err := sim.Run(context.Background(), 0, 0, SinkFunc(func(context.Context, Frame) error {
		called = true
		return nil
	}))

	require.NoError(t, err)
	assert.Equal(t, 0, series.Len())
	assert.Empty(t, series.Samples())
	assert.False(t, called)
	assert.Zero(t, rec.count())
}

func TestRun_ValuesWithinBounds(t *testing.T) {
	sim, _ := newTestSimulator(7)
	var frames []Frame

	_, err := sim.Run(context.Background(), 500, time.Millisecond, collect(&frames))
	require.NoError(t, err)

	for _, f := range frames {
		s := f.Snapshot
		assert.True(t, TemperatureRange.Contains(s.Temperature.Value), "temperature %v", s.Temperature.Value)
		assert.True(t, HumidityRange.Contains(s.Humidity.Value), "humidity %v", s.Humidity.Value)
		assert.True(t, CO2Range.Contains(s.CO2.Value), "co2 %v", s.CO2.Value)
		assert.True(t, SampleRange.Contains(f.Sample.Value), "sample %v", f.Sample.Value)

		assert.True(t, TemperatureDelta.Contains(s.Temperature.Delta))
		assert.True(t, HumidityDelta.Contains(s.Humidity.Delta))
		assert.True(t, CO2Delta.Contains(s.CO2.Delta))
	}
}

func TestRun_MetricLabels(t *testing.T) {
	sim, _ := newTestSimulator(3)
	metrics := sim.Snapshot().Metrics()

	require.Len(t, metrics, 3)
	assert.Equal(t, "Temperature", metrics[0].Name)
	assert.Equal(t, "°C", metrics[0].Unit)
	assert.Equal(t, "Humidity", metrics[1].Name)
	assert.Equal(t, "%", metrics[1].Unit)
	assert.Equal(t, "CO2", metrics[2].Name)
	assert.Equal(t, "ppm", metrics[2].Unit)
}

func TestRun_TimestampsNonDecreasing(t *testing.T) {
	sim, _ := newTestSimulator(1)

	series, err := sim.Run(context.Background(), 20, time.Millisecond, nil)
	require.NoError(t, err)

	samples := series.Samples()
	for i := 1; i < len(samples); i++ {
		assert.False(t, samples[i].Time.Before(samples[i-1].Time), "sample %d goes back in time", i)
	}
}

func TestRun_ProgressAndFrames(t *testing.T) {
	sim, _ := newTestSimulator(1)
	var frames []Frame

	const steps = 4
	_, err := sim.Run(context.Background(), steps, time.Millisecond, collect(&frames))
	require.NoError(t, err)
	require.Len(t, frames, steps)

	for i, f := range frames {
		iter := i + 1
		assert.Equal(t, iter, f.Iteration)
		assert.Equal(t, steps, f.Steps)
		assert.InDelta(t, float64(iter)/steps, f.Progress, 1e-12)
		assert.Len(t, f.Series, iter, "frame carries the full series so far")
		assert.Equal(t, f.Sample, f.Series[len(f.Series)-1])
		assert.Equal(t, iter == steps, f.Done())
	}
	assert.Equal(t, 1.0, frames[steps-1].Progress)
}

func TestRun_FrameSeriesIsACopy(t *testing.T) {
	sim, _ := newTestSimulator(1)
	var frames []Frame

	series, err := sim.Run(context.Background(), 3, time.Millisecond, collect(&frames))
	require.NoError(t, err)

	frames[0].Series[0].Value = -1
	assert.NotEqual(t, -1.0, series.Samples()[0].Value)
}

func TestRun_PausesWithInterval(t *testing.T) {
	sim, rec := newTestSimulator(1)

	_, err := sim.Run(context.Background(), 3, 250*time.Millisecond, nil)
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond, 250 * time.Millisecond}, rec.pauses)
}

func TestRun_SameSeedSameValues(t *testing.T) {
	a, _ := newTestSimulator(99)
	b, _ := newTestSimulator(99)

	sa, err := a.Run(context.Background(), 10, time.Millisecond, nil)
	require.NoError(t, err)
	sb, err := b.Run(context.Background(), 10, time.Millisecond, nil)
	require.NoError(t, err)

	assert.Equal(t, sa.Values(), sb.Values())
}

func TestRun_NoStateAcrossRuns(t *testing.T) {
	sim, _ := newTestSimulator(1)

	first, err := sim.Run(context.Background(), 5, time.Millisecond, nil)
	require.NoError(t, err)
	second, err := sim.Run(context.Background(), 2, time.Millisecond, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, first.Len())
	assert.Equal(t, 2, second.Len())
}

func TestRun_InvalidParameters(t *testing.T) {
	tests := []struct {
		name     string
		steps    int
		interval time.Duration
		wantErr  bool
	}{
		{name: "negative steps", steps: -1, interval: time.Second, wantErr: true},
		{name: "zero interval", steps: 3, interval: 0, wantErr: true},
		{name: "negative interval", steps: 3, interval: -time.Second, wantErr: true},
		{name: "zero steps ignores interval", steps: 0, interval: 0, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, rec := newTestSimulator(1)
			var frames []Frame

			series, err := sim.Run(context.Background(), tt.steps, tt.interval, collect(&frames))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dderrors.IsCode(err, dderrors.ErrSimulator))
			} else {
				require.NoError(t, err)
			}
			assert.Empty(t, frames, "nothing emitted")
			assert.Zero(t, rec.count())
			assert.Equal(t, 0, series.Len())
		})
	}
}

func TestRun_SinkErrorStopsRun(t *testing.T) {
	sim, _ := newTestSimulator(1)
	boom := errors.New("connection closed")

	emitted := 0
	series, err := sim.Run(context.Background(), 10, time.Millisecond, SinkFunc(func(context.Context, Frame) error {
		emitted++
		if emitted == 3 {
			return boom
		}
		return nil
	}))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, series.Len())
	assert.Equal(t, 3, emitted)
}

func TestRun_CancelReturnsPartialSeries(t *testing.T) {
	sim, _ := newTestSimulator(1)
	ctx, cancel := context.WithCancel(context.Background())

	series, err := sim.Run(ctx, 10, time.Millisecond, SinkFunc(func(_ context.Context, f Frame) error {
		if f.Iteration == 4 {
			cancel()
		}
		return nil
	}))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 4, series.Len())
}

func TestRun_AlreadyCancelled(t *testing.T) {
	sim, _ := newTestSimulator(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	series, err := sim.Run(ctx, 5, time.Millisecond, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, series.Len())
}

func TestRun_DefaultSleepHonoursContext(t *testing.T) {
	sim := NewSeeded(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	series, err := sim.Run(ctx, 3, time.Hour, nil)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, series.Len())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_LogsThroughLogger(t *testing.T) {
	sim, _ := newTestSimulator(1)
	buf := logger.NewBufferLogger()
	sim.Log = buf

	_, err := sim.Run(context.Background(), 2, time.Millisecond, nil)
	require.NoError(t, err)

	assert.True(t, buf.Contains("finished with 2 samples"))
}

func TestStart_StreamsFramesInOrder(t *testing.T) {
	sim, _ := newTestSimulator(1)

	run := sim.Start(context.Background(), 5, time.Millisecond)
	require.NotEmpty(t, run.ID)

	var got []int
	for f := range run.Frames() {
		assert.Equal(t, run.ID, f.RunID)
		got = append(got, f.Iteration)
	}

	series, err := run.Wait()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	assert.Equal(t, 5, series.Len())

	select {
	case <-run.Done():
	default:
		t.Fatal("Done should be closed after Wait")
	}
}

func TestStart_Cancel(t *testing.T) {
	sim, _ := newTestSimulator(1)

	run := sim.Start(context.Background(), 100, time.Millisecond)

	first, ok := <-run.Frames()
	require.True(t, ok)
	assert.Equal(t, 1, first.Iteration)

	run.Cancel()
	series, err := run.Wait()

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, series.Len(), 100)
	assert.GreaterOrEqual(t, series.Len(), 1)

	// Channel is closed once the run ends.
	for range run.Frames() {
	}
}

func TestStart_ParentContextCancel(t *testing.T) {
	sim, _ := newTestSimulator(1)
	ctx, cancel := context.WithCancel(context.Background())

	run := sim.Start(ctx, 100, time.Millisecond)
	<-run.Frames()
	cancel()

	_, err := run.Wait()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStart_InvalidParametersClosesFrames(t *testing.T) {
	sim, _ := newTestSimulator(1)

	run := sim.Start(context.Background(), -1, time.Second)

	_, ok := <-run.Frames()
	assert.False(t, ok)
	_, err := run.Wait()
	assert.True(t, dderrors.IsCode(err, dderrors.ErrSimulator))
}

func TestSeries(t *testing.T) {
	var nilSeries *Series
	assert.Equal(t, 0, nilSeries.Len())
	assert.Nil(t, nilSeries.Samples())
	assert.Nil(t, nilSeries.Values())
	_, ok := nilSeries.Last()
	assert.False(t, ok)

	s := NewSeries(2)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Append(Sample{Time: t0, Value: 1})
	s.Append(Sample{Time: t0.Add(time.Second), Value: 2})
	s.Append(Sample{Time: t0.Add(2 * time.Second), Value: 3})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{1, 2, 3}, s.Values())
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 3.0, last.Value)
}

func TestRangeDraw(t *testing.T) {
	sim := NewSeeded(5)
	r := Range{Min: -3, Max: 3}
	for i := 0; i < 1000; i++ {
		v := r.Draw(sim.Rand)
		assert.True(t, v >= -3 && v < 3)
	}
}
