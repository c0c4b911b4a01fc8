package chartdoc

import (
	"encoding/json"
	"time"
)

// Figure is a Plotly chart description. It serialises to the
// {"data": [...], "layout": {...}} shape Plotly.newPlot takes.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one plotted series.
type Trace struct {
	Type          string    `json:"type"`
	Mode          string    `json:"mode,omitempty"`
	Name          string    `json:"name"`
	X             []string  `json:"x"`
	Y             []float64 `json:"y"`
	XAxis         string    `json:"xaxis,omitempty"`
	YAxis         string    `json:"yaxis,omitempty"`
	Orientation   string    `json:"orientation,omitempty"`
	ShowLegend    bool      `json:"showlegend"`
	LegendGroup   string    `json:"legendgroup"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	Line          *Line     `json:"line,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
}

// Line styles a trace's connecting line.
type Line struct {
	Color string `json:"color,omitempty"`
	Dash  string `json:"dash,omitempty"`
}

// Marker styles a trace's points.
type Marker struct {
	Symbol string `json:"symbol,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Layout is the figure-wide layout.
type Layout struct {
	Template *Template `json:"template,omitempty"`
	Title    Title     `json:"title"`
	XAxis    Axis      `json:"xaxis"`
	YAxis    Axis      `json:"yaxis"`
	Legend   *Legend   `json:"legend,omitempty"`
	Margin   Margin    `json:"margin"`
}

// Title is a positioned text title. X is the horizontal position in paper
// coordinates; 0.5 centres it.
type Title struct {
	Text string   `json:"text,omitempty"`
	X    *float64 `json:"x,omitempty"`
}

// Axis describes one cartesian axis.
type Axis struct {
	Anchor string     `json:"anchor,omitempty"`
	Domain []float64  `json:"domain,omitempty"`
	Title  *AxisTitle `json:"title,omitempty"`
}

// AxisTitle labels an axis.
type AxisTitle struct {
	Text string `json:"text"`
}

// Legend configures the legend box.
type Legend struct {
	TraceGroupOrder string `json:"tracegrouporder,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Template carries layout defaults. Only the layout part of a Plotly template
// is used here.
type Template struct {
	Layout TemplateLayout `json:"layout"`
}

// TemplateLayout is the subset of layout a template sets.
type TemplateLayout struct {
	PaperBGColor string            `json:"paper_bgcolor"`
	PlotBGColor  string            `json:"plot_bgcolor"`
	Colorway     []string          `json:"colorway"`
	Font         map[string]string `json:"font"`
	HoverMode    string            `json:"hovermode"`
	XAxis        TemplateAxis      `json:"xaxis"`
	YAxis        TemplateAxis      `json:"yaxis"`
}

// TemplateAxis is the per-axis styling a template sets.
type TemplateAxis struct {
	AutoMargin    bool   `json:"automargin"`
	GridColor     string `json:"gridcolor"`
	LineColor     string `json:"linecolor"`
	Ticks         string `json:"ticks"`
	ZeroLineColor string `json:"zerolinecolor"`
	ZeroLineWidth int    `json:"zerolinewidth"`
}

// Colorway is the default trace colour sequence.
var Colorway = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// PlotlyWhite returns the light template: white backgrounds and pale grid.
func PlotlyWhite() *Template {
	axis := TemplateAxis{
		AutoMargin:    true,
		GridColor:     "#EBF0F8",
		LineColor:     "#EBF0F8",
		Ticks:         "",
		ZeroLineColor: "#EBF0F8",
		ZeroLineWidth: 2,
	}
	return &Template{Layout: TemplateLayout{
		PaperBGColor: "white",
		PlotBGColor:  "white",
		Colorway:     append([]string(nil), Colorway...),
		Font:         map[string]string{"color": "#2a3f5f"},
		HoverMode:    "closest",
		XAxis:        axis,
		YAxis:        axis,
	}}
}

// PlotlyDateLayout formats x values the way Plotly serialises timestamps.
const PlotlyDateLayout = "2006-01-02T15:04:05"

// LineOptions configures LineFigure.
type LineOptions struct {
	Title  string
	XTitle string
	YTitle string
	// TitleX is the title's horizontal position; 0.5 centres it.
	TitleX float64
	// Margin applies to all four sides.
	Margin int
}

// DefaultLineOptions returns the chart service's figure settings.
func DefaultLineOptions(title string) LineOptions {
	return LineOptions{
		Title:  title,
		XTitle: "Date",
		YTitle: "Value",
		TitleX: 0.5,
		Margin: 40,
	}
}

// LineFigure builds a single-trace line chart of s.
func LineFigure(s Series, opts LineOptions) Figure {
	x := make([]string, len(s.Dates))
	for i, d := range s.Dates {
		x[i] = d.Format(PlotlyDateLayout)
	}
	y := make([]float64, len(s.Values))
	copy(y, s.Values)

	titleX := opts.TitleX
	return Figure{
		Data: []Trace{{
			Type:          "scatter",
			Mode:          "lines",
			Name:          "",
			X:             x,
			Y:             y,
			XAxis:         "x",
			YAxis:         "y",
			Orientation:   "v",
			ShowLegend:    false,
			LegendGroup:   "",
			HoverTemplate: opts.XTitle + "=%{x}<br>" + opts.YTitle + "=%{y}<extra></extra>",
			Line:          &Line{Color: Colorway[0], Dash: "solid"},
			Marker:        &Marker{Symbol: "circle"},
		}},
		Layout: Layout{
			Template: PlotlyWhite(),
			Title:    Title{Text: opts.Title, X: &titleX},
			XAxis:    Axis{Anchor: "y", Domain: []float64{0, 1}, Title: &AxisTitle{Text: opts.XTitle}},
			YAxis:    Axis{Anchor: "x", Domain: []float64{0, 1}, Title: &AxisTitle{Text: opts.YTitle}},
			Legend:   &Legend{TraceGroupOrder: "reversed"},
			Margin:   Margin{L: opts.Margin, R: opts.Margin, T: opts.Margin, B: opts.Margin},
		},
	}
}

// JSON encodes the figure.
func (f Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}

// Dates parses the trace's x values back into times. Used by tests and the
// PNG renderer when all it has is a decoded figure.
func (t Trace) Dates() ([]time.Time, error) {
	out := make([]time.Time, len(t.X))
	for i, s := range t.X {
		d, err := time.Parse(PlotlyDateLayout, s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
