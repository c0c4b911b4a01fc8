package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/datadash/datadash/internal/logger"
	"github.com/datadash/datadash/internal/simulator"
	"github.com/datadash/datadash/internal/ui"
)

// Widths of the per-iteration progress bar and sparkline.
const (
	simulateBarWidth   = 20
	simulateSparkWidth = 30
)

// SimulateOptions holds options for the simulate command.
type SimulateOptions struct {
	Steps    int
	Interval time.Duration
	JSON     bool // one JSON frame per line instead of styled lines

	// NewSimulator overrides the wall-clock simulator.
	NewSimulator func() *simulator.Simulator
}

func simulateCommand(ctx context.Context, w io.Writer, opts SimulateOptions) error {
	if err := simulator.Validate(opts.Steps, opts.Interval); err != nil {
		return err
	}

	newSim := opts.NewSimulator
	if newSim == nil {
		newSim = simulator.New
	}
	sim := newSim()
	sim.Log = logger.NewEnvLogger("[sim]")

	var sink simulator.Sink
	if opts.JSON {
		enc := json.NewEncoder(w)
		sink = simulator.SinkFunc(func(_ context.Context, f simulator.Frame) error {
			return enc.Encode(f)
		})
	} else {
		sink = simulator.SinkFunc(func(_ context.Context, f simulator.Frame) error {
			_, err := fmt.Fprintln(w, renderFrameLine(f))
			return err
		})
	}

	series, err := sim.Run(ctx, opts.Steps, opts.Interval, sink)
	if stderrors.Is(err, context.Canceled) {
		if !opts.JSON {
			fmt.Fprintf(w, "%s\n", ui.WarningStyle().Render(
				fmt.Sprintf("%s Stopped after %d of %d samples", ui.SymbolSkipped, series.Len(), opts.Steps)))
		}
		return nil
	}
	if err != nil {
		return err
	}

	if !opts.JSON {
		fmt.Fprintln(w, renderSeriesSummary(series.Values()))
	}
	return nil
}

// renderFrameLine renders one iteration:
//
//	[████░░░░]  40%   4/10  ▃▅▂▇  Temperature 23.4 °C ▲ +1.5 · ...
func renderFrameLine(f simulator.Frame) string {
	values := make([]float64, len(f.Series))
	for i, s := range f.Series {
		values[i] = s.Value
	}

	r := simulator.SampleRange
	spark := ui.RenderSparklineRange(values, simulateSparkWidth, r.Min, r.Max, ui.ColorInfo)
	spark += strings.Repeat(" ", simulateSparkWidth-min(len(values), simulateSparkWidth))

	metrics := f.Snapshot.Metrics()
	readings := make([]string, len(metrics))
	for i, m := range metrics {
		readings[i] = fmt.Sprintf("%s %s %s", m.Name, formatReading(m), formatChange(m.Delta))
	}

	digits := len(fmt.Sprint(f.Steps))
	return fmt.Sprintf("%s  %*d/%d  %s  %s",
		ui.RenderProgressBar(f.Progress, simulateBarWidth),
		digits, f.Iteration, f.Steps,
		spark,
		strings.Join(readings, ui.MutedStyle().Render(" · ")))
}

func formatReading(m simulator.Metric) string {
	if m.Unit == "%" {
		return fmt.Sprintf("%.1f%%", m.Value)
	}
	return fmt.Sprintf("%.1f %s", m.Value, m.Unit)
}

func formatChange(d float64) string {
	switch {
	case d > 0:
		return ui.SuccessStyle().Render(fmt.Sprintf("▲ %+.1f", d))
	case d < 0:
		return ui.ErrorStyle().Render(fmt.Sprintf("▼ %+.1f", d))
	default:
		return ui.MutedStyle().Render("● 0.0")
	}
}

// renderSeriesSummary is the closing line: sample count and value range.
func renderSeriesSummary(values []float64) string {
	if len(values) == 0 {
		return ui.SuccessStyle().Render(ui.SymbolSuccess + " No samples requested")
	}
	lo, hi, sum := values[0], values[0], 0.0
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	return ui.SuccessStyle().Render(fmt.Sprintf("%s %d samples", ui.SymbolSuccess, len(values))) +
		ui.MutedStyle().Render(fmt.Sprintf("  min %.1f  mean %.1f  max %.1f", lo, sum/float64(len(values)), hi))
}
