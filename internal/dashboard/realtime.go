package dashboard

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/datadash/datadash/internal/simulator"
	"github.com/dustin/go-humanize/english"
)

// RunState is where the Real-time Demo's simulation stands.
type RunState int

const (
	RunIdle RunState = iota
	RunRunning
	RunDone
	RunCancelled
	RunFailed
)

// String returns a human-readable state.
func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunRunning:
		return "running"
	case RunDone:
		return "done"
	case RunCancelled:
		return "cancelled"
	case RunFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	metricCardWidth = 22
	realtimeHeight  = 8
)

// frameMsg carries one simulator frame to the model.
type frameMsg struct {
	runID string
	frame simulator.Frame
}

// runDoneMsg reports that a run has returned.
type runDoneMsg struct {
	runID   string
	samples int
	err     error
}

// waitForFrame receives the next frame from run, or reports the run's end
// once its frame channel closes.
func waitForFrame(run *simulator.Run) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-run.Frames()
		if !ok {
			series, err := run.Wait()
			return runDoneMsg{runID: run.ID, samples: series.Len(), err: err}
		}
		return frameMsg{runID: run.ID, frame: f}
	}
}

// realtimePage holds the Real-time Demo state.
type realtimePage struct {
	steps    int
	interval time.Duration

	run   *simulator.Run
	state RunState
	frame *simulator.Frame
	err   error
	runs  int

	// samples is the series length the last finished run returned.
	samples int

	bar progress.Model
}

func newRealtimePage(steps int, interval time.Duration) realtimePage {
	return realtimePage{
		steps:    steps,
		interval: interval,
		bar: progress.New(
			progress.WithGradient(string(ColorAccentDim), string(ColorAccent)),
			progress.WithWidth(40),
		),
	}
}

// running reports whether a run is in flight.
func (p realtimePage) running() bool {
	return p.state == RunRunning
}

// start launches a new run unless one is already going.
func (p *realtimePage) start(newSim func() *simulator.Simulator) tea.Cmd {
	if p.running() {
		return nil
	}
	p.run = newSim().Start(context.Background(), p.steps, p.interval)
	p.state = RunRunning
	p.frame = nil
	p.err = nil
	p.runs++
	return waitForFrame(p.run)
}

// cancel stops the current run. The run reports back through runDoneMsg.
func (p *realtimePage) cancel() {
	if p.run != nil && p.running() {
		p.run.Cancel()
	}
}

// onFrame records a frame from the current run and asks for the next.
func (p *realtimePage) onFrame(msg frameMsg) tea.Cmd {
	if p.run == nil || msg.runID != p.run.ID {
		return nil
	}
	f := msg.frame
	p.frame = &f
	return waitForFrame(p.run)
}

// onDone records how the current run ended.
func (p *realtimePage) onDone(msg runDoneMsg) {
	if p.run == nil || msg.runID != p.run.ID {
		return
	}
	p.samples = msg.samples
	switch {
	case msg.err == nil:
		p.state = RunDone
	case stderrors.Is(msg.err, context.Canceled):
		p.state = RunCancelled
	default:
		p.state = RunFailed
		p.err = msg.err
	}
}

func (p *realtimePage) update(msg tea.Msg, newSim func() *simulator.Simulator) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case KeyEnter, KeyStart:
		return p.start(newSim)
	case KeyCancel:
		p.cancel()
	}
	return nil
}

// Progress is the fraction of the current run completed.
func (p realtimePage) Progress() float64 {
	if p.frame == nil {
		return 0
	}
	return p.frame.Progress
}

func (p realtimePage) statusLine() string {
	switch p.state {
	case RunIdle:
		return MutedStyle.Render(fmt.Sprintf("Press enter to start a %d-step simulation (%s per step).", p.steps, p.interval))
	case RunRunning:
		iter := 0
		if p.frame != nil {
			iter = p.frame.Iteration
		}
		return FocusStyle.Render(fmt.Sprintf("Running… iteration %d/%d", iter, p.steps)) + MutedStyle.Render("  (x to stop)")
	case RunDone:
		return SuccessStyle.Render(fmt.Sprintf("Simulation complete: %s.", english.Plural(p.samples, "sample", "samples")))
	case RunCancelled:
		return ErrorStyle.Render(fmt.Sprintf("Simulation stopped after %s.", english.Plural(p.samples, "sample", "samples"))) + MutedStyle.Render("  Press enter to run again.")
	default:
		return ErrorStyle.Render(fmt.Sprintf("Simulation failed: %v", p.err))
	}
}

// formatMetric renders a reading with its unit the way each metric reads.
func formatMetric(m simulator.Metric) string {
	switch m.Unit {
	case "ppm":
		return fmt.Sprintf("%.0f %s", m.Value, m.Unit)
	case "%":
		return fmt.Sprintf("%.1f%s", m.Value, m.Unit)
	default:
		return fmt.Sprintf("%.1f %s", m.Value, m.Unit)
	}
}

// formatDelta renders a delta with a direction arrow.
func formatDelta(d float64) string {
	switch {
	case d > 0:
		return fmt.Sprintf("▲ %+.1f", d)
	case d < 0:
		return fmt.Sprintf("▼ %+.1f", d)
	default:
		return "● 0.0"
	}
}

// renderMetricCard draws one labeled reading with its delta.
func renderMetricCard(m simulator.Metric) string {
	lines := []string{
		LabelStyle.Render(m.Name),
		ValueStyle.Render(formatMetric(m)),
		DeltaStyle(m.Delta).Render(formatDelta(m.Delta)),
	}
	return CardStyle.Width(metricCardWidth).Render(strings.Join(lines, "\n"))
}

func (p realtimePage) view(width int) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Real-time Demo"))
	b.WriteString("\n")
	b.WriteString(p.statusLine())
	b.WriteString("\n\n")

	if p.frame == nil {
		return b.String()
	}

	metrics := p.frame.Snapshot.Metrics()
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = renderMetricCard(m)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	values := make([]float64, len(p.frame.Series))
	for i, s := range p.frame.Series {
		values[i] = s.Value
	}
	b.WriteString(SectionStyle.Render("Sample value"))
	b.WriteString("\n")
	r := simulator.SampleRange
	chart := RenderLineChartRange(values, max(width-12, 20), realtimeHeight, r.Min, r.Max, ColorGraph)
	b.WriteString(WithYAxis(chart, r.Min, r.Max))
	b.WriteString("\n\n")

	b.WriteString(p.bar.ViewAs(p.Progress()))

	return b.String()
}
