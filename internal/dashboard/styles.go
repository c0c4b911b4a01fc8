package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/datadash/datadash/internal/ui"
)

// Dashboard color palette, mapped onto the shared neon palette.
const (
	ColorDarkBg    = ui.ColorDeepVoid
	ColorSurfaceBg = ui.ColorDarkSurface
	ColorBorder    = ui.ColorGlassBorder

	ColorHealthy  = ui.ColorSuccess
	ColorWarning  = ui.ColorWarning
	ColorCritical = ui.ColorError

	ColorTextPrimary   = ui.ColorPrimary
	ColorTextSecondary = ui.ColorSecondary
	ColorTextMuted     = ui.ColorMuted

	ColorAccent    = ui.ColorNeonPink
	ColorAccentDim = ui.ColorNeonPurple

	ColorGraph = ui.ColorNeonCyan
)

// Swatch is one entry of the chart color picker.
type Swatch struct {
	Name  string
	Color lipgloss.Color
}

// ChartPalette is what the color picker cycles through. Green comes first to
// match the picker's default.
var ChartPalette = []Swatch{
	{Name: "green", Color: lipgloss.Color("#00F900")},
	{Name: "cyan", Color: ColorGraph},
	{Name: "pink", Color: ColorAccent},
	{Name: "amber", Color: ColorWarning},
	{Name: "orange", Color: ui.ColorNeonOrange},
	{Name: "purple", Color: ColorAccentDim},
	{Name: "white", Color: ColorTextPrimary},
}

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	FocusStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy)
)

// DeltaStyle colours a metric delta: green up, red down, muted when flat.
func DeltaStyle(delta float64) lipgloss.Style {
	switch {
	case delta > 0:
		return lipgloss.NewStyle().Foreground(ColorHealthy)
	case delta < 0:
		return lipgloss.NewStyle().Foreground(ColorCritical)
	default:
		return MutedStyle
	}
}

// Slider renders a horizontal slider track for value in [lo, hi].
func Slider(width int, value, lo, hi int) string {
	if width < 2 {
		width = 2
	}
	if hi <= lo {
		hi = lo + 1
	}
	if value < lo {
		value = lo
	}
	if value > hi {
		value = hi
	}

	pos := (value - lo) * (width - 1) / (hi - lo)
	track := make([]rune, width)
	for i := range track {
		switch {
		case i == pos:
			track[i] = '●'
		case i < pos:
			track[i] = '━'
		default:
			track[i] = '─'
		}
	}

	filled := lipgloss.NewStyle().Foreground(ColorAccent).Render(string(track[:pos+1]))
	rest := MutedStyle.Render(string(track[pos+1:]))
	return filled + rest
}
