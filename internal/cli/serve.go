package cli

import (
	"fmt"
	"io"

	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/logger"
	"github.com/datadash/datadash/internal/ui"
	"github.com/datadash/datadash/internal/web"
)

// newRedirectServer builds the redirect service from env.
func newRedirectServer(env *web.Env) (*web.Server, error) {
	handler, err := web.NewRedirectRouter(env)
	if err != nil {
		return nil, err
	}
	return web.NewServer("redirect", env.Config.Redirect.Addr, handler, env.Log), nil
}

// newChartServer builds the chart service from env.
func newChartServer(env *web.Env) *web.Server {
	return web.NewServer("chart", env.Config.Chart.Addr, web.NewChartRouter(env), env.Log)
}

func printServeHeader(w io.Writer, lines ...string) {
	ui.PrintHeader(w, ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: "Press Ctrl+C to stop",
		Lines:   lines,
	})
}

func redirectCommand(w io.Writer, cfg *config.Config) error {
	env := web.NewEnv(cfg, logger.NewEnvLogger("[redirect]"))
	srv, err := newRedirectServer(env)
	if err != nil {
		return err
	}

	printServeHeader(w, fmt.Sprintf("redirect  http://%s  →  %s", cfg.Redirect.Addr, cfg.Redirect.Target))

	ctx, cancel := signalContext()
	defer cancel()
	return srv.Run(ctx)
}

func chartCommand(w io.Writer, cfg *config.Config) error {
	env := web.NewEnv(cfg, logger.NewEnvLogger("[chart]"))
	srv := newChartServer(env)

	printServeHeader(w, fmt.Sprintf("chart     http://%s  (seed %d)", cfg.Chart.Addr, cfg.Chart.Seed))

	ctx, cancel := signalContext()
	defer cancel()
	return srv.Run(ctx)
}

func serveCommand(w io.Writer, cfg *config.Config) error {
	env := web.NewEnv(cfg, logger.NewEnvLogger("[serve]"))
	redirect, err := newRedirectServer(env)
	if err != nil {
		return err
	}
	chart := newChartServer(env)

	printServeHeader(w,
		fmt.Sprintf("redirect  http://%s", cfg.Redirect.Addr),
		fmt.Sprintf("chart     http://%s", cfg.Chart.Addr),
	)

	ctx, cancel := signalContext()
	defer cancel()
	return web.RunAll(ctx, redirect, chart)
}
