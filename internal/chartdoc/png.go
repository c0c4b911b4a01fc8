package chartdoc

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// PNGOptions sizes a rendered chart.
type PNGOptions struct {
	Title  string
	Width  int
	Height int
}

// DefaultPNGOptions matches the browser chart's proportions.
func DefaultPNGOptions(title string) PNGOptions {
	return PNGOptions{Title: title, Width: 1024, Height: 480}
}

// lineStyle draws a connected line with no points.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 1.5,
		StrokeColor: col,
		DotWidth:    0,
	}
}

// RenderPNG draws s as a time-series line chart and writes a PNG to w.
// go-chart needs at least two points to build an axis range.
func RenderPNG(w io.Writer, s Series, opts PNGOptions) error {
	if len(s.Dates) < 2 || len(s.Dates) != len(s.Values) {
		return fmt.Errorf("need at least two matching dates and values, got %d dates and %d values", len(s.Dates), len(s.Values))
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultPNGOptions(opts.Title)
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{Name: "Value"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Value",
				XValues: s.Dates,
				YValues: s.Values,
				Style:   lineStyle(drawing.ColorFromHex("636efa")),
			},
		},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
