package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/logger"
	"github.com/datadash/datadash/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd is the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datadash",
	Short: "Data analytics demos: redirect page, chart API, terminal dashboard",
	Long: `datadash bundles three small data demos behind one binary:

  redirect   an HTTP page that forwards visitors to the hosted dashboard
  chart      an HTTP chart service serving a time-series chart document
  dashboard  an interactive terminal dashboard with five views

Configuration is read from .datadash.yaml (see 'datadash init'), with
DATADASH_* environment variables and a .env file layered on top.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.DisableColors()
		}
		if verbose {
			_ = os.Setenv(logger.DebugEnv, "1")
		}
	},
}

func init() {
	rootCmd.SuggestionsMinimumDistance = 2
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .datadash.yaml, searched upward)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			fmt.Fprintln(os.Stderr, unknownCommandMessage(err))
		} else {
			fmt.Fprint(os.Stderr, formatError(err))
		}
		os.Exit(1)
	}
}

// formatError renders structured errors as-is and wraps anything else in
// the same ✗ prefix.
func formatError(err error) string {
	if errors.CodeOf(err) != "" {
		return err.Error()
	}
	return fmt.Sprintf("%s %v\n", ui.SymbolFail, err)
}

// isUnknownCommandError reports whether err is cobra's complaint about an
// unknown command or flag.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the quoted command name out of cobra's
// `unknown command "foo" for "datadash"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// unknownCommandMessage adds cobra's close-match suggestions to the error.
func unknownCommandMessage(err error) string {
	name := extractUnknownCommand(err)
	if name == "" {
		return fmt.Sprintf("%s %v", ui.SymbolFail, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Unknown command: %s\n", ui.SymbolFail, name)
	if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
		fmt.Fprintf(&b, "\n  Did you mean: %s?\n", strings.Join(suggestions, ", "))
	}
	b.WriteString("\n  Run 'datadash --help' to see available commands")
	return b.String()
}

// loadConfig resolves and validates the config for a command. Debug logs
// say where it came from.
func loadConfig() (*config.Config, error) {
	cfg, path, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logger.Default().Debug("no config file found, using defaults")
	} else {
		logger.Default().Debug("loaded config from %s", path)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
