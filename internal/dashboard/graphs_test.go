package dashboard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output in tests so we can verify ANSI color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func plain(s string) string {
	return ansi.Strip(s)
}

func TestFindMinMax(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		wantMin float64
		wantMax float64
	}{
		{name: "empty", data: nil, wantMin: 0, wantMax: 1},
		{name: "range", data: []float64{-3, 7, 2}, wantMin: -3, wantMax: 7},
		{name: "flat is widened", data: []float64{5, 5, 5}, wantMin: 4, wantMax: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := findMinMax(tt.data)
			assert.Equal(t, tt.wantMin, lo)
			assert.Equal(t, tt.wantMax, hi)
		})
	}
}

func TestResampleData(t *testing.T) {
	t.Run("downsampling averages buckets", func(t *testing.T) {
		got := resampleData([]float64{1, 3, 5, 7}, 2)
		assert.Equal(t, []float64{2, 6}, got)
	})

	t.Run("upsampling interpolates", func(t *testing.T) {
		got := resampleData([]float64{0, 10}, 3)
		assert.Equal(t, []float64{0, 5, 10}, got)
	})

	t.Run("same size is unchanged", func(t *testing.T) {
		data := []float64{1, 2, 3}
		assert.Equal(t, data, resampleData(data, 3))
	})

	t.Run("single value fills", func(t *testing.T) {
		assert.Equal(t, []float64{4, 4, 4}, resampleData([]float64{4}, 3))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, resampleData(nil, 3))
		assert.Nil(t, resampleData([]float64{1}, 0))
	})
}

func TestBrailleCanvas_Set(t *testing.T) {
	c := newBrailleCanvas(1, 1)

	c.set(0, 0) // bottom-left: dot 7
	c.set(1, 3) // top-right: dot 4
	c.set(5, 5) // off canvas, ignored

	assert.Equal(t, '\u2848', c.grid[0][0])
}

func TestBrailleCanvas_Line(t *testing.T) {
	c := newBrailleCanvas(1, 1)
	c.line(0, 0, 0, 3)

	// Left column fully lit: dots 1, 2, 3, 7.
	assert.Equal(t, '\u2847', c.grid[0][0])
}

func TestRenderLineChart(t *testing.T) {
	data := []float64{1, 5, 2, 8, 3, 9, 4}
	out := RenderLineChart(data, 10, 3, ColorGraph)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 10, lipgloss.Width(line))
	}
	assert.Contains(t, out, "\x1b[38;2;0;255;255m", "cyan foreground")
}

func TestRenderLineChartRange_FixedScale(t *testing.T) {
	// A flat line at the bottom of the range stays on the bottom row.
	out := plain(RenderLineChartRange([]float64{0, 0, 0, 0}, 2, 2, 0, 100, ColorGraph))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "\u2800\u2800", lines[0])
	assert.NotEqual(t, "\u2800\u2800", lines[1])
}

func TestRenderScatterChart(t *testing.T) {
	out := plain(RenderScatterChart([]float64{0, 1}, 1, 1, ColorGraph))
	// Low point bottom-left, high point top-right.
	assert.Equal(t, "\u2848", out)
}

func TestRenderBarChart(t *testing.T) {
	out := plain(RenderBarChart([]float64{1, 2}, 4, 1, ColorGraph))

	// Two bars two cells wide with a one-cell gap; bars start at zero.
	assert.Equal(t, "▄ █ ", out)
}

func TestRenderBarChart_TooManyValues(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i)
	}
	out := RenderBarChart(data, 20, 4, ColorGraph)

	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 20, lipgloss.Width(line))
	}
}

func TestRenderCharts_Empty(t *testing.T) {
	for _, kind := range ChartKinds {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Empty(t, RenderChart(kind, nil, 10, 3, ColorGraph))
			assert.Empty(t, RenderChart(kind, []float64{1}, 0, 3, ColorGraph))
			assert.Empty(t, RenderChart(kind, []float64{1}, 10, 0, ColorGraph))
		})
	}
}

func TestWithYAxis(t *testing.T) {
	out := plain(WithYAxis("ab\ncd\nef", 0, 100))

	assert.Equal(t, "100.0 ┤ab\n      ┤cd\n  0.0 ┤ef", out)
	assert.Empty(t, WithYAxis("", 0, 1))
}

func TestChartKind_String(t *testing.T) {
	assert.Equal(t, "Line", ChartLine.String())
	assert.Equal(t, "Bar", ChartBar.String())
	assert.Equal(t, "Scatter", ChartScatter.String())
	assert.Equal(t, "Line", ChartKind(99).String())
}

func TestSlider(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  string
	}{
		{name: "min", value: 0, want: "●────"},
		{name: "middle", value: 50, want: "━━●──"},
		{name: "max", value: 100, want: "━━━━●"},
		{name: "clamped", value: 150, want: "━━━━●"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plain(Slider(5, tt.value, 0, 100)))
		})
	}
}
