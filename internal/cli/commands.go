package cli

import (
	"os"
	"time"

	"github.com/datadash/datadash/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	redirectAddrFlag   string
	redirectTargetFlag string
	chartAddrFlag      string
	chartSeedFlag      int64
	simulateStepsFlag  int
	simulateInterval   time.Duration
	simulateJSON       bool
	analyzeFormatFlag  string
	initForce          bool
	initNonInteractive bool
)

// redirectCmd serves the redirect page
var redirectCmd = &cobra.Command{
	Use:   "redirect",
	Short: "Serve the redirect page",
	Long: `Run an HTTP server whose only page sends visitors on to the hosted
dashboard with a meta refresh.

Examples:
  datadash redirect
  datadash redirect --addr :9000
  datadash redirect --target https://example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Redirect.Addr = redirectAddrFlag
		}
		if cmd.Flags().Changed("target") {
			cfg.Redirect.Target = redirectTargetFlag
		}
		return redirectCommand(cmd.OutOrStdout(), cfg)
	},
}

// chartCmd serves the chart service
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Serve the chart page and chart data API",
	Long: `Run the chart service:

  GET  /                 HTML page that draws the chart with Plotly
  GET  /get_chart_data   chart document (JSON), same every request
  GET  /chart.png        the same series rendered server-side
  GET  /api/realtime     websocket stream of one simulator run
  POST /api/upload       CSV upload, answered with describe statistics
  GET  /metrics          Prometheus metrics

Examples:
  datadash chart
  datadash chart --addr :5001 --seed 7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Chart.Addr = chartAddrFlag
		}
		if cmd.Flags().Changed("seed") {
			cfg.Chart.Seed = chartSeedFlag
		}
		return chartCommand(cmd.OutOrStdout(), cfg)
	},
}

// serveCmd runs both HTTP services
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the redirect page and the chart service together",
	Long: `Run the redirect and chart services in one process. If either fails
to start, both stop.

Examples:
  datadash serve`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serveCommand(cmd.OutOrStdout(), cfg)
	},
}

// dashboardCmd starts the TUI dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive terminal dashboard",
	Long: `Start the full-screen dashboard with five views: Home, Data Analysis,
Interactive Charts, Real-time Demo and File Upload.

Keyboard shortcuts:
  tab / shift+tab  Next / previous view
  1-5              Jump to a view
  q / Ctrl+C       Quit
  ?                Show help

Examples:
  datadash dashboard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return dashboardCommand(cfg)
	},
}

// simulateCmd runs the metrics simulator without the TUI
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time metrics simulator in the terminal",
	Long: `Run one simulation and print a line per iteration: progress, the
sample series as a sparkline, and the three metric readings.

With --json each iteration is written as one JSON frame per line.

Examples:
  datadash simulate
  datadash simulate --steps 20 --interval 250ms
  datadash simulate --json | jq .sample.value`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		steps, interval := cfg.Simulator.Steps, cfg.Simulator.Interval
		if cmd.Flags().Changed("steps") {
			steps = simulateStepsFlag
		}
		if cmd.Flags().Changed("interval") {
			interval = simulateInterval
		}

		ctx, cancel := signalContext()
		defer cancel()
		return simulateCommand(ctx, cmd.OutOrStdout(), SimulateOptions{
			Steps:    steps,
			Interval: interval,
			JSON:     simulateJSON,
		})
	},
}

// analyzeCmd prints describe statistics for a CSV file
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Describe a CSV file",
	Long: `Parse a CSV file and print a preview plus describe statistics
(count, mean, std, min, quartiles, max) for its numeric columns.

Examples:
  datadash analyze data.csv
  datadash analyze data.csv --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyzeCommand(cmd.OutOrStdout(), args[0], analyzeFormatFlag)
	},
}

// initCmd creates a new .datadash.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .datadash.yaml configuration",
	Long: `Create a .datadash.yaml file in the current directory.

Prompts for the redirect target, the chart seed and the simulator settings.
Without a terminal, or with --non-interactive, defaults are written.

Examples:
  datadash init
  datadash init --non-interactive
  datadash init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(cmd.OutOrStdout(), initForce, initNonInteractive)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for datadash.

Examples:
  # Bash
  datadash completion bash > /etc/bash_completion.d/datadash

  # Zsh
  datadash completion zsh > "${fpath[1]}/_datadash"

  # Fish
  datadash completion fish > ~/.config/fish/completions/datadash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	redirectCmd.Flags().StringVar(&redirectAddrFlag, "addr", "", "listen address (default from config, 0.0.0.0:8080)")
	redirectCmd.Flags().StringVar(&redirectTargetFlag, "target", "", "URL to redirect to")

	chartCmd.Flags().StringVar(&chartAddrFlag, "addr", "", "listen address (default from config, :5000)")
	chartCmd.Flags().Int64Var(&chartSeedFlag, "seed", 0, "seed for the chart series")

	simulateCmd.Flags().IntVar(&simulateStepsFlag, "steps", 0, "number of iterations (default from config, 100)")
	simulateCmd.Flags().DurationVar(&simulateInterval, "interval", 0, "pause after each iteration (default from config, 100ms)")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "write one JSON frame per line")

	analyzeCmd.Flags().StringVarP(&analyzeFormatFlag, "format", "f", FormatTable, "output format: table, json or yaml")

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and write defaults")

	rootCmd.AddCommand(redirectCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
