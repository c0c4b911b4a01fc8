package dashboard

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Point-count slider bounds.
const (
	MinChartPoints  = 2
	MaxChartPoints  = 500
	chartPointsStep = 5
	chartHeight     = 10
)

type chartField int

const (
	fieldKind chartField = iota
	fieldColor
	fieldPoints
	chartFieldCount
)

// chartsPage holds the Interactive Charts view controls and data.
type chartsPage struct {
	kind   int
	color  int
	points int
	focus  chartField
	data   []float64
}

func newChartsPage(points int, rng *rand.Rand) chartsPage {
	p := chartsPage{points: clampPoints(points)}
	p.regenerate(rng)
	return p
}

func clampPoints(n int) int {
	return min(max(n, MinChartPoints), MaxChartPoints)
}

// Kind returns the selected chart type.
func (p chartsPage) Kind() ChartKind {
	return ChartKinds[p.kind]
}

// Swatch returns the selected colour.
func (p chartsPage) Swatch() Swatch {
	return ChartPalette[p.color]
}

// regenerate draws points standard normal values.
func (p *chartsPage) regenerate(rng *rand.Rand) {
	p.data = make([]float64, p.points)
	for i := range p.data {
		p.data[i] = rng.NormFloat64()
	}
}

// step moves the focused control by delta.
func (p *chartsPage) step(delta int, rng *rand.Rand) {
	switch p.focus {
	case fieldKind:
		p.kind = (p.kind + delta + len(ChartKinds)) % len(ChartKinds)
	case fieldColor:
		p.color = (p.color + delta + len(ChartPalette)) % len(ChartPalette)
	case fieldPoints:
		p.points = clampPoints(p.points + delta*chartPointsStep)
		p.regenerate(rng)
	}
}

func (p *chartsPage) update(msg tea.Msg, rng *rand.Rand) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case KeyUp, KeyUpK:
		p.focus = (p.focus + chartFieldCount - 1) % chartFieldCount
	case KeyDown, KeyDownJ:
		p.focus = (p.focus + 1) % chartFieldCount
	case KeyLeft, KeyLeftH:
		p.step(-1, rng)
	case KeyRight, KeyRightL:
		p.step(1, rng)
	case KeyEnter, KeyRegenerate:
		p.regenerate(rng)
	}
	return nil
}

func (p chartsPage) control(field chartField, label, value string) string {
	marker := "  "
	style := LabelStyle
	if p.focus == field {
		marker = FocusStyle.Render("› ")
		style = FocusStyle
	}
	return marker + style.Render(fmt.Sprintf("%-12s", label)) + " " + value
}

func (p chartsPage) view(width int) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Interactive Charts"))
	b.WriteString("\n")

	b.WriteString(p.control(fieldKind, "Chart type", "◂ "+ValueStyle.Render(p.Kind().String())+" ▸"))
	b.WriteString("\n")
	sw := p.Swatch()
	b.WriteString(p.control(fieldColor, "Color", "◂ "+colorChip(sw)+" ▸"))
	b.WriteString("\n")
	b.WriteString(p.control(fieldPoints, "Points",
		Slider(20, p.points, MinChartPoints, MaxChartPoints)+" "+ValueStyle.Render(fmt.Sprint(p.points))))
	b.WriteString("\n")
	b.WriteString("  " + MutedStyle.Render("[ enter: Generate New Data ]"))
	b.WriteString("\n\n")

	chartWidth := max(width-12, 20)
	lo, hi := findMinMax(p.data)
	chart := RenderChart(p.Kind(), p.data, chartWidth, chartHeight, sw.Color)
	b.WriteString(WithYAxis(chart, lo, hi))

	return b.String()
}

func colorChip(sw Swatch) string {
	return lipgloss.NewStyle().Foreground(sw.Color).Render("■ " + sw.Name)
}
