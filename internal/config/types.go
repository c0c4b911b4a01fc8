package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// DefaultRedirectTarget is where the redirect service sends visitors.
const DefaultRedirectTarget = "https://first-python-app-mariamshabbir-0208.streamlit.app"

// Config represents the complete .datadash.yaml configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Redirect  RedirectConfig  `yaml:"redirect" mapstructure:"redirect"`
	Chart     ChartConfig     `yaml:"chart" mapstructure:"chart"`
	Simulator SimulatorConfig `yaml:"simulator" mapstructure:"simulator"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
}

// RedirectConfig controls the redirect service.
type RedirectConfig struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// Target is the URL the page meta-refreshes to.
	Target string `yaml:"target" mapstructure:"target"`

	// Title is the HTML page title.
	Title string `yaml:"title" mapstructure:"title"`
}

// ChartConfig controls the chart service and the series it serves.
type ChartConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`

	// Seed makes the served series reproducible across requests and restarts.
	Seed int64 `yaml:"seed" mapstructure:"seed"`

	// Start and End bound the daily date range, inclusive, as YYYY-MM-DD.
	Start string `yaml:"start" mapstructure:"start"`
	End   string `yaml:"end" mapstructure:"end"`

	Mean   float64 `yaml:"mean" mapstructure:"mean"`
	StdDev float64 `yaml:"stddev" mapstructure:"stddev"`
	Title  string  `yaml:"title" mapstructure:"title"`

	// AllowedOrigins feeds the CORS middleware. "*" allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`

	// MaxUploadBytes caps the body of POST /api/upload.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// SimulatorConfig controls the real-time metrics simulator.
type SimulatorConfig struct {
	// Steps is the number of iterations per run.
	Steps int `yaml:"steps" mapstructure:"steps"`

	// Interval is the pause after each iteration.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// MarshalYAML writes Interval as a duration string instead of nanoseconds.
func (s SimulatorConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Steps    int    `yaml:"steps"`
		Interval string `yaml:"interval"`
	}{s.Steps, s.Interval.String()}, nil
}

// DashboardConfig controls the terminal dashboard.
type DashboardConfig struct {
	// SampleRows is the row count of the Data Analysis sample table.
	SampleRows int `yaml:"sample_rows" mapstructure:"sample_rows"`

	// Seed for the sample table and chart data. 0 seeds from the clock.
	Seed int64 `yaml:"seed" mapstructure:"seed"`

	// ChartPoints is the initial point count on the Interactive Charts view.
	ChartPoints int `yaml:"chart_points" mapstructure:"chart_points"`
}

// Start and end dates of the default chart series.
const (
	DefaultChartStart = "2024-01-01"
	DefaultChartEnd   = "2024-12-31"
	DateLayout        = "2006-01-02"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Redirect: RedirectConfig{
			Addr:   "0.0.0.0:8080",
			Target: DefaultRedirectTarget,
			Title:  "Streamlit App Redirect",
		},
		Chart: ChartConfig{
			Addr:           ":5000",
			Seed:           42,
			Start:          DefaultChartStart,
			End:            DefaultChartEnd,
			Mean:           100,
			StdDev:         15,
			Title:          "Time Series Analysis",
			AllowedOrigins: []string{"*"},
			MaxUploadBytes: 10 << 20,
		},
		Simulator: SimulatorConfig{
			Steps:    100,
			Interval: 100 * time.Millisecond,
		},
		Dashboard: DashboardConfig{
			SampleRows:  20,
			Seed:        0,
			ChartPoints: 50,
		},
	}
}

// ChartRange parses Start and End. Call Validate first; the error here only
// repeats what Validate already reports.
func (c ChartConfig) ChartRange() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(DateLayout, c.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
