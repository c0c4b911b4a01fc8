package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Progress bar block characters.
const (
	BarFilled = '█'
	BarEmpty  = '░'
)

// ProgressColor returns the bar color for a completion percentage: higher
// is better. 0-50% secondary, 50-80% warning, 80%+ success.
func ProgressColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return ColorSuccess
	case percent >= 50:
		return ColorWarning
	default:
		return ColorSecondary
	}
}

// ClampPercent clamps a percentage to the 0-100 range.
func ClampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// CalculateBarCounts returns the number of filled and empty cells for a
// bar of width at percent (0-100).
func CalculateBarCounts(percent float64, width int) (filled, empty int) {
	filled = int((ClampPercent(percent) / 100.0) * float64(width))
	empty = width - filled
	return
}

// BuildBarString builds the unstyled bar, optionally wrapped in [ ].
func BuildBarString(filled, empty int, brackets bool) string {
	var sb strings.Builder
	sb.Grow((filled + empty + 2) * 3)

	if brackets {
		sb.WriteRune('[')
	}
	sb.WriteString(strings.Repeat(string(BarFilled), filled))
	sb.WriteString(strings.Repeat(string(BarEmpty), empty))
	if brackets {
		sb.WriteRune(']')
	}
	return sb.String()
}

// RenderProgressBar renders a bar for fraction (0-1) followed by the
// percentage. Output format: [████████░░░░]  67%
func RenderProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent := ClampPercent(fraction * 100)
	filled, empty := CalculateBarCounts(percent, width)

	style := lipgloss.NewStyle().Foreground(ProgressColor(percent))
	return style.Render(BuildBarString(filled, empty, true)) + fmt.Sprintf(" %3.0f%%", percent)
}
