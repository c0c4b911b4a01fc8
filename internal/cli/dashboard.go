package cli

import (
	stderrors "errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/dashboard"
	"github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/logger"
	"golang.org/x/term"
)

func dashboardCommand(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrUI,
			"The dashboard needs an interactive terminal",
			"Run it directly in a terminal, or use 'datadash simulate' for headless output")
	}

	opts := dashboard.OptionsFromConfig(cfg)
	opts.Log = logger.NewEnvLogger("[dashboard]")

	ctx, cancel := signalContext()
	defer cancel()

	err := dashboard.Run(ctx, opts)
	if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Stopped by SIGTERM.
		return nil
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrUI,
			"Dashboard exited with an error",
			"Check your terminal supports the alternate screen")
	}
	return nil
}
