package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestColorConstants(t *testing.T) {
	colors := []lipgloss.Color{
		ColorNeonPink,
		ColorNeonCyan,
		ColorNeonPurple,
		ColorNeonGreen,
		ColorNeonOrange,
		ColorNeonAmber,
		ColorDeepVoid,
		ColorDarkSurface,
		ColorGlassBorder,
		ColorSuccess,
		ColorError,
		ColorWarning,
		ColorInfo,
		ColorPrimary,
		ColorSecondary,
		ColorMuted,
	}

	for _, color := range colors {
		colorStr := string(color)
		assert.True(t, colorStr[0] == '#', "color should start with #: %s", colorStr)
		assert.Len(t, colorStr, 7, "color should be #RRGGBB: %s", colorStr)
	}
}

func TestSemanticColorsAreUnique(t *testing.T) {
	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{ColorSuccess, ColorError, ColorWarning, ColorInfo} {
		assert.False(t, seen[c], "duplicate semantic color %s", c)
		seen[c] = true
	}
}

func TestStylesRender(t *testing.T) {
	styles := map[string]lipgloss.Style{
		"success": SuccessStyle(),
		"error":   ErrorStyle(),
		"warning": WarningStyle(),
		"info":    InfoStyle(),
		"muted":   MutedStyle(),
	}
	for name, style := range styles {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, style.Render(name), name)
		})
	}
}

func TestSymbolsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range []string{SymbolSuccess, SymbolFail, SymbolWarning, SymbolSkipped} {
		assert.False(t, seen[s], "duplicate symbol %s", s)
		seen[s] = true
	}
}

func TestPrintWarning(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	PrintWarning("test warning message")

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	assert.Contains(t, buf.String(), "test warning message")
	assert.Contains(t, buf.String(), SymbolWarning)
}

func TestDisableColors(t *testing.T) {
	profile := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(profile) })

	DisableColors()
	assert.Equal(t, "test", SuccessStyle().Render("test"))
}
