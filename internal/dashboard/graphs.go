package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal charts.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty); each dot is one bit.

const brailleBase = '\u2800'

// barBlocks are the eighth-height blocks used for the top of a bar.
var barBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// brailleDots maps [row][col] inside one character to the dot's bit offset.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// ChartKind selects how the Interactive Charts page draws its data.
type ChartKind int

const (
	ChartLine ChartKind = iota
	ChartBar
	ChartScatter
)

// ChartKinds lists the dropdown entries in display order.
var ChartKinds = []ChartKind{ChartLine, ChartBar, ChartScatter}

// String returns the dropdown label.
func (k ChartKind) String() string {
	switch k {
	case ChartLine:
		return "Line"
	case ChartBar:
		return "Bar"
	case ChartScatter:
		return "Scatter"
	default:
		return "Line"
	}
}

// RenderChart draws data with the given kind.
func RenderChart(kind ChartKind, data []float64, width, height int, color lipgloss.Color) string {
	switch kind {
	case ChartBar:
		return RenderBarChart(data, width, height, color)
	case ChartScatter:
		return RenderScatterChart(data, width, height, color)
	default:
		return RenderLineChart(data, width, height, color)
	}
}

// findMinMax returns the data's range, widened when every value is equal so
// normalization never divides by zero.
func findMinMax(data []float64) (minVal, maxVal float64) {
	if len(data) == 0 {
		return 0, 1
	}
	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == maxVal {
		minVal--
		maxVal++
	}
	return minVal, maxVal
}

// normalizeValue converts a value to the 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

// clampInt clamps an integer to [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// brailleCanvas is a grid of braille characters addressed by dot.
type brailleCanvas struct {
	width, height int
	grid          [][]rune
}

func newBrailleCanvas(width, height int) *brailleCanvas {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}
	return &brailleCanvas{width: width, height: height, grid: grid}
}

func (c *brailleCanvas) dotsWide() int { return c.width * 2 }
func (c *brailleCanvas) dotsHigh() int { return c.height * 4 }

// set lights the dot at column x and row y, where y = 0 is the bottom row.
func (c *brailleCanvas) set(x, y int) {
	if x < 0 || y < 0 || x >= c.dotsWide() || y >= c.dotsHigh() {
		return
	}
	row := c.height - 1 - y/4
	subRow := 3 - y%4
	c.grid[row][x/2] |= rune(1 << brailleDots[subRow][x%2])
}

// line lights every dot on the segment between two dots.
func (c *brailleCanvas) line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		c.set(x0, y0)
		return
	}
	for s := 0; s <= steps; s++ {
		x := x0 + int(math.Round(float64(dx*s)/float64(steps)))
		y := y0 + int(math.Round(float64(dy*s)/float64(steps)))
		c.set(x, y)
	}
}

func (c *brailleCanvas) render(color lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, len(c.grid))
	for i, row := range c.grid {
		lines[i] = style.Render(string(row))
	}
	return strings.Join(lines, "\n")
}

// plotPoints maps data onto canvas dots: x spread evenly across the width,
// y scaled between minVal and maxVal.
func (c *brailleCanvas) plotPoints(data []float64, minVal, maxVal float64) (xs, ys []int) {
	pts := data
	if len(pts) > c.dotsWide() {
		pts = resampleData(data, c.dotsWide())
	}
	top := c.dotsHigh() - 1

	xs = make([]int, len(pts))
	ys = make([]int, len(pts))
	for i, v := range pts {
		if len(pts) > 1 {
			xs[i] = i * (c.dotsWide() - 1) / (len(pts) - 1)
		}
		ys[i] = clampInt(int(math.Round(normalizeValue(v, minVal, maxVal)*float64(top))), top)
	}
	return xs, ys
}

// RenderLineChart draws data as a connected braille line, width characters
// wide and height rows tall, scaled to the data's own range.
func RenderLineChart(data []float64, width, height int, color lipgloss.Color) string {
	minVal, maxVal := findMinMax(data)
	return RenderLineChartRange(data, width, height, minVal, maxVal, color)
}

// RenderLineChartRange is RenderLineChart on a fixed vertical range.
func RenderLineChartRange(data []float64, width, height int, minVal, maxVal float64, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	c := newBrailleCanvas(width, height)
	xs, ys := c.plotPoints(data, minVal, maxVal)
	for i := range xs {
		if i == 0 {
			c.set(xs[0], ys[0])
			continue
		}
		c.line(xs[i-1], ys[i-1], xs[i], ys[i])
	}
	return c.render(color)
}

// RenderScatterChart draws each value as a single braille dot.
func RenderScatterChart(data []float64, width, height int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	c := newBrailleCanvas(width, height)
	minVal, maxVal := findMinMax(data)
	xs, ys := c.plotPoints(data, minVal, maxVal)
	for i := range xs {
		c.set(xs[i], ys[i])
	}
	return c.render(color)
}

// RenderBarChart draws one vertical bar per value with eighth-block
// resolution. Bars start at zero when every value is non-negative, otherwise
// at the minimum.
func RenderBarChart(data []float64, width, height int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	values := data
	if len(values) > width {
		values = resampleData(data, width)
	}
	minVal, maxVal := findMinMax(values)
	if minVal >= 0 {
		minVal = 0
	}

	barWidth := width / len(values)
	gap := 0
	if barWidth > 1 {
		gap = 1
	}
	levels := height * 8

	rows := make([]strings.Builder, height)
	for _, v := range values {
		level := clampInt(int(math.Round(normalizeValue(v, minVal, maxVal)*float64(levels))), levels)
		for row := 0; row < height; row++ {
			fill := level - (height-1-row)*8
			var ch rune
			switch {
			case fill >= 8:
				ch = barBlocks[7]
			case fill > 0:
				ch = barBlocks[fill-1]
			default:
				ch = ' '
			}
			rows[row].WriteString(strings.Repeat(string(ch), barWidth-gap))
			rows[row].WriteString(strings.Repeat(" ", gap))
		}
	}

	style := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, height)
	for i := range rows {
		lines[i] = style.Render(padRight(rows[i].String(), width))
	}
	return strings.Join(lines, "\n")
}

// WithYAxis prefixes a rendered chart with its top and bottom values.
func WithYAxis(chart string, minVal, maxVal float64) string {
	if chart == "" {
		return ""
	}
	top := fmt.Sprintf("%.1f", maxVal)
	bottom := fmt.Sprintf("%.1f", minVal)
	labelWidth := max(len(top), len(bottom))

	lines := strings.Split(chart, "\n")
	for i, line := range lines {
		label := ""
		switch i {
		case 0:
			label = top
		case len(lines) - 1:
			label = bottom
		}
		lines[i] = MutedStyle.Render(fmt.Sprintf("%*s ┤", labelWidth, label)) + line
	}
	return strings.Join(lines, "\n")
}

// resampleData resamples data to the target size. Downsampling averages each
// bucket; upsampling interpolates linearly.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}

	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}

			sum := 0.0
			for _, v := range data[start:end] {
				sum += v
			}
			result[i] = sum / float64(end-start)
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}

	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// padRight pads s with spaces to the given visible width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
