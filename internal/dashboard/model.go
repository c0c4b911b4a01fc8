package dashboard

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/logger"
	"github.com/datadash/datadash/internal/simulator"
)

// Options is everything the dashboard needs from the outside. It is built
// once at startup; the model never reads configuration on its own.
type Options struct {
	Simulator config.SimulatorConfig
	Dashboard config.DashboardConfig

	// NewSimulator builds the simulator for each Real-time Demo run.
	NewSimulator func() *simulator.Simulator

	// Dir is where the file picker starts. Empty means the working directory.
	Dir string

	Log logger.Logger
}

// OptionsFromConfig fills Options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Simulator:    cfg.Simulator,
		Dashboard:    cfg.Dashboard,
		NewSimulator: simulator.New,
	}
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	opts Options
	rng  *rand.Rand

	page     Page
	width    int
	height   int
	showHelp bool
	quitting bool

	home     homePage
	analysis analysisPage
	charts   chartsPage
	realtime realtimePage
	upload   uploadPage
}

// NewModel creates the dashboard on its Home page.
func NewModel(opts Options) Model {
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	if opts.NewSimulator == nil {
		opts.NewSimulator = simulator.New
	}

	seed := opts.Dashboard.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return Model{
		opts:     opts,
		rng:      rng,
		page:     PageHome,
		home:     newHomePage(),
		analysis: newAnalysisPage(opts.Dashboard.SampleRows, rng),
		charts:   newChartsPage(opts.Dashboard.ChartPoints, rng),
		realtime: newRealtimePage(opts.Simulator.Steps, opts.Simulator.Interval),
		upload:   newUploadPage(opts.Dir),
	}
}

// Init starts the cursor blink and the file picker's first directory read.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.upload.picker.Init(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		return m, m.updatePage(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.upload.resize(m.contentWidth(), m.height)
		var cmd tea.Cmd
		m.upload.picker, cmd = m.upload.picker.Update(msg)
		return m, cmd

	case frameMsg:
		return m, m.realtime.onFrame(msg)

	case runDoneMsg:
		m.realtime.onDone(msg)
		if msg.err != nil && m.realtime.state == RunFailed {
			m.opts.Log.Warn("simulation %s failed: %v", msg.runID, msg.err)
		}
		return m, nil
	}

	// Everything else belongs to a component: cursor blinks go to the
	// name field, directory listings to the file picker.
	var homeCmd, pickerCmd tea.Cmd
	m.home.name, homeCmd = m.home.name.Update(msg)
	m.upload.picker, pickerCmd = m.upload.picker.Update(msg)
	return m, tea.Batch(homeCmd, pickerCmd)
}

// updatePage hands a key to the active page.
func (m *Model) updatePage(msg tea.KeyMsg) tea.Cmd {
	switch m.page {
	case PageHome:
		return m.home.update(msg)
	case PageAnalysis:
		return m.analysis.update(msg, m.rng)
	case PageCharts:
		return m.charts.update(msg, m.rng)
	case PageRealtime:
		return m.realtime.update(msg, m.opts.NewSimulator)
	case PageUpload:
		return m.upload.update(msg)
	}
	return nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Page returns the visible page.
func (m Model) Page() Page {
	return m.page
}

// SimulationState reports the Real-time Demo run state.
func (m Model) SimulationState() RunState {
	return m.realtime.state
}

// contentWidth is the width available to a page body.
func (m Model) contentWidth() int {
	if m.width == 0 {
		return 80
	}
	return max(m.width-2, 20)
}

// Run shows the dashboard full-screen until the user quits or ctx is done.
// A simulation still running at exit is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.realtime.cancel()
	}
	return err
}
