package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/ui"
	"golang.org/x/term"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // directory to write into; empty means "."
	Overwrite      bool   // overwrite existing config without asking
	NonInteractive bool   // skip prompts, use defaults
	Out            io.Writer
}

// initAnswers are the prompt fields, kept as strings for huh inputs.
type initAnswers struct {
	Target   string
	Seed     string
	Steps    string
	Interval string
	Rows     string
}

func defaultAnswers(cfg *config.Config) initAnswers {
	return initAnswers{
		Target:   cfg.Redirect.Target,
		Seed:     strconv.FormatInt(cfg.Chart.Seed, 10),
		Steps:    strconv.Itoa(cfg.Simulator.Steps),
		Interval: cfg.Simulator.Interval.String(),
		Rows:     strconv.Itoa(cfg.Dashboard.SampleRows),
	}
}

// apply parses the answers into cfg.
func (a initAnswers) apply(cfg *config.Config) error {
	cfg.Redirect.Target = strings.TrimSpace(a.Target)

	seed, err := strconv.ParseInt(strings.TrimSpace(a.Seed), 10, 64)
	if err != nil {
		return fmt.Errorf("chart seed must be a whole number")
	}
	cfg.Chart.Seed = seed

	steps, err := strconv.Atoi(strings.TrimSpace(a.Steps))
	if err != nil {
		return fmt.Errorf("simulator steps must be a whole number")
	}
	cfg.Simulator.Steps = steps

	interval, err := time.ParseDuration(strings.TrimSpace(a.Interval))
	if err != nil {
		return fmt.Errorf("simulator interval must be a duration like 100ms")
	}
	cfg.Simulator.Interval = interval

	rows, err := strconv.Atoi(strings.TrimSpace(a.Rows))
	if err != nil {
		return fmt.Errorf("sample rows must be a whole number")
	}
	cfg.Dashboard.SampleRows = rows

	return config.Validate(cfg)
}

func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("enter an http(s) URL")
	}
	return nil
}

func validateInt(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func validateDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return fmt.Errorf("enter a positive duration like 100ms or 1s")
	}
	return nil
}

func initForm(a *initAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Redirect target").
				Description("Where 'datadash redirect' sends visitors").
				Value(&a.Target).
				Validate(validateURL),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Chart seed").
				Description("Same seed, same chart on every request").
				Value(&a.Seed).
				Validate(validateInt),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Simulator steps").
				Description("Iterations per real-time run").
				Value(&a.Steps).
				Validate(validateInt),
			huh.NewInput().
				Title("Simulator interval").
				Description("Pause after each iteration").
				Value(&a.Interval).
				Validate(validateDuration),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Sample rows").
				Description("Rows in the Data Analysis sample table").
				Value(&a.Rows).
				Validate(validateInt),
		),
	)
}

// Init creates a new .datadash.yaml configuration file.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		answers := defaultAnswers(cfg)
		if err := initForm(&answers).Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive flag")
		}
		if err := answers.apply(cfg); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Invalid answer",
				"Run 'datadash init' again")
		}
	}

	if err := config.Write(configPath, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  datadash serve      - Run the redirect and chart services")
	fmt.Fprintln(out, "  datadash dashboard  - Open the terminal dashboard")
	fmt.Fprintln(out, "  datadash simulate   - Watch a metrics simulation")

	return nil
}

// initCommand is the implementation called by the cobra command. Prompts
// are skipped when stdin is not a terminal.
func initCommand(w io.Writer, force, nonInteractive bool) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		nonInteractive = true
	}
	return Init(InitOptions{
		Overwrite:      force,
		NonInteractive: nonInteractive,
		Out:            w,
	})
}
