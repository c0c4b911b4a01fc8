package simulator

import (
	"context"
	"math/rand"
	"time"

	"github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/logger"
	"github.com/google/uuid"
)

// Sink receives each frame as it is produced. Returning an error stops the
// run; the error is returned from Run unchanged.
type Sink interface {
	Emit(ctx context.Context, f Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, f Frame) error

// Emit calls f.
func (fn SinkFunc) Emit(ctx context.Context, f Frame) error {
	return fn(ctx, f)
}

// Discard drops every frame.
var Discard Sink = SinkFunc(func(context.Context, Frame) error { return nil })

// SleepFunc pauses for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Simulator draws synthetic readings. A Simulator runs one loop at a time;
// Rand is not safe for concurrent use.
type Simulator struct {
	Rand  *rand.Rand
	Clock func() time.Time
	Sleep SleepFunc
	Log   logger.Logger
}

// New returns a simulator seeded from the wall clock.
func New() *Simulator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a simulator whose draws are fully determined by seed.
func NewSeeded(seed int64) *Simulator {
	return &Simulator{
		Rand:  rand.New(rand.NewSource(seed)),
		Clock: time.Now,
		Sleep: sleepContext,
		Log:   logger.Noop(),
	}
}

// sleepContext is the default SleepFunc, backed by a timer.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Validate checks run parameters without starting anything.
func Validate(steps int, interval time.Duration) error {
	if steps < 0 {
		return errors.New(errors.ErrSimulator,
			"Step count can't be negative",
			"Use 0 or more steps")
	}
	if steps > 0 && interval <= 0 {
		return errors.New(errors.ErrSimulator,
			"Interval must be positive",
			"Use a duration like 100ms or 1s")
	}
	return nil
}

// Snapshot draws three independent readings with their display deltas.
func (s *Simulator) Snapshot() Snapshot {
	return Snapshot{
		Temperature: Metric{
			Name:  "Temperature",
			Unit:  "°C",
			Value: TemperatureRange.Draw(s.Rand),
			Delta: TemperatureDelta.Draw(s.Rand),
		},
		Humidity: Metric{
			Name:  "Humidity",
			Unit:  "%",
			Value: HumidityRange.Draw(s.Rand),
			Delta: HumidityDelta.Draw(s.Rand),
		},
		CO2: Metric{
			Name:  "CO2",
			Unit:  "ppm",
			Value: CO2Range.Draw(s.Rand),
			Delta: CO2Delta.Draw(s.Rand),
		},
	}
}

// Run executes exactly steps iterations, emitting one frame per iteration
// and pausing for interval after each, the last one included.
//
// steps == 0 returns an empty series immediately without pausing. On sink
// failure or context cancellation the partial series is returned alongside
// the error.
func (s *Simulator) Run(ctx context.Context, steps int, interval time.Duration, sink Sink) (*Series, error) {
	return s.run(ctx, "", steps, interval, sink)
}

func (s *Simulator) run(ctx context.Context, runID string, steps int, interval time.Duration, sink Sink) (*Series, error) {
	if err := Validate(steps, interval); err != nil {
		return NewSeries(0), err
	}
	if sink == nil {
		sink = Discard
	}
	log := s.Log
	if log == nil {
		log = logger.Noop()
	}

	series := NewSeries(steps)
	log.Debug("run %s: %d steps every %s", runID, steps, interval)

	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			log.Debug("run %s: cancelled before step %d", runID, i)
			return series, err
		}

		snap := s.Snapshot()
		sample := Sample{Time: s.Clock(), Value: SampleRange.Draw(s.Rand)}
		series.Append(sample)

		frame := Frame{
			RunID:     runID,
			Iteration: i,
			Steps:     steps,
			Snapshot:  snap,
			Sample:    sample,
			Series:    series.Samples(),
			Progress:  float64(i) / float64(steps),
		}
		if err := sink.Emit(ctx, frame); err != nil {
			log.Debug("run %s: sink failed at step %d: %v", runID, i, err)
			return series, err
		}

		if err := s.Sleep(ctx, interval); err != nil {
			log.Debug("run %s: cancelled during pause after step %d", runID, i)
			return series, err
		}
	}

	log.Debug("run %s: finished with %d samples", runID, series.Len())
	return series, nil
}

// Run is a handle on a simulation running in the background.
type Run struct {
	// ID identifies the run in logs and frames.
	ID string

	frames chan Frame
	cancel context.CancelFunc
	done   chan struct{}

	series *Series
	err    error
}

// Start launches a run on its own goroutine. Frames arrive on Frames() in
// order; the channel closes when the run ends. The caller must drain Frames
// or Cancel the run.
func (s *Simulator) Start(ctx context.Context, steps int, interval time.Duration) *Run {
	ctx, cancel := context.WithCancel(ctx)
	r := &Run{
		ID:     uuid.NewString(),
		frames: make(chan Frame),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	sink := SinkFunc(func(ctx context.Context, f Frame) error {
		select {
		case r.frames <- f:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	go func() {
		defer close(r.done)
		defer close(r.frames)
		defer cancel()
		r.series, r.err = s.run(ctx, r.ID, steps, interval, sink)
	}()

	return r
}

// Frames returns the channel of frames produced by the run.
func (r *Run) Frames() <-chan Frame {
	return r.frames
}

// Cancel stops the run at its next emit or pause.
func (r *Run) Cancel() {
	r.cancel()
}

// Done is closed once the run has returned.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run ends and returns its series and error.
// Frames not yet received are dropped once the run is cancelled.
func (r *Run) Wait() (*Series, error) {
	<-r.done
	return r.series, r.err
}
