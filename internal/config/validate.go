package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/datadash/datadash/internal/errors"
)

// MaxSimulatorSteps bounds a single run. The series is held in memory in full.
const MaxSimulatorSteps = 100000

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but datadash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade datadash or lower the version field.")
	}

	if err := validateRedirect(cfg.Redirect); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'redirect' section in your .datadash.yaml.")
	}

	if err := validateChart(cfg.Chart); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'chart' section in your .datadash.yaml.")
	}

	if err := validateSimulator(cfg.Simulator); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'simulator' section in your .datadash.yaml.")
	}

	if err := validateDashboard(cfg.Dashboard); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'dashboard' section in your .datadash.yaml.")
	}

	return nil
}

func validateAddr(field, addr string) error {
	if strings.TrimSpace(addr) == "" {
		return fmt.Errorf("%s is empty - use host:port, like ':8080'", field)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s '%s' isn't a valid host:port", field, addr)
	}
	return nil
}

func validateRedirect(r RedirectConfig) error {
	if err := validateAddr("redirect.addr", r.Addr); err != nil {
		return err
	}
	u, err := url.Parse(r.Target)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("redirect.target '%s' needs to be an absolute http(s) URL", r.Target)
	}
	// The target lands inside an HTML attribute.
	if strings.ContainsAny(r.Target, "\"<>") {
		return fmt.Errorf("redirect.target can't contain quotes or angle brackets")
	}
	return nil
}

func validateChart(c ChartConfig) error {
	if err := validateAddr("chart.addr", c.Addr); err != nil {
		return err
	}
	start, err := time.Parse(DateLayout, c.Start)
	if err != nil {
		return fmt.Errorf("chart.start '%s' isn't a date - use YYYY-MM-DD", c.Start)
	}
	end, err := time.Parse(DateLayout, c.End)
	if err != nil {
		return fmt.Errorf("chart.end '%s' isn't a date - use YYYY-MM-DD", c.End)
	}
	if end.Before(start) {
		return fmt.Errorf("chart.end (%s) is before chart.start (%s)", c.End, c.Start)
	}
	if c.StdDev < 0 {
		return fmt.Errorf("chart.stddev can't be negative (got %g)", c.StdDev)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("chart.max_upload_bytes needs to be positive (got %d)", c.MaxUploadBytes)
	}
	for _, origin := range c.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("chart.allowed_origins has an empty entry - remove it")
		}
	}
	return nil
}

func validateSimulator(s SimulatorConfig) error {
	if s.Steps < 0 {
		return fmt.Errorf("simulator.steps can't be negative (got %d)", s.Steps)
	}
	if s.Steps > MaxSimulatorSteps {
		return fmt.Errorf("simulator.steps %d is over the limit of %d", s.Steps, MaxSimulatorSteps)
	}
	if s.Interval <= 0 {
		return fmt.Errorf("simulator.interval needs to be positive - try something like '100ms' or '1s'")
	}
	return nil
}

func validateDashboard(d DashboardConfig) error {
	if d.SampleRows < 1 || d.SampleRows > 1000 {
		return fmt.Errorf("dashboard.sample_rows needs to be 1-1000 (got %d)", d.SampleRows)
	}
	if d.ChartPoints < 2 || d.ChartPoints > 500 {
		return fmt.Errorf("dashboard.chart_points needs to be 2-500 (got %d)", d.ChartPoints)
	}
	return nil
}
