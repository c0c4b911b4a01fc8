// Package web serves the redirect page and the chart service.
//
// Handlers never read process globals: everything they need travels in an
// Env built once at startup and passed to the router constructors.
package web

import (
	"io"
	"os"

	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/logger"
	"github.com/datadash/datadash/internal/simulator"
)

// Env is the request-independent state shared by handlers.
type Env struct {
	Config  *config.Config
	Log     logger.Logger
	Metrics *Metrics

	// NewSimulator builds the simulator for one realtime stream.
	NewSimulator func() *simulator.Simulator

	// AccessLog receives combined-format access log lines.
	AccessLog io.Writer
}

// NewEnv returns an Env with fresh metrics, wall-clock simulators, and
// access logs on stderr.
func NewEnv(cfg *config.Config, log logger.Logger) *Env {
	if log == nil {
		log = logger.Noop()
	}
	return &Env{
		Config:       cfg,
		Log:          log,
		Metrics:      NewMetrics(),
		NewSimulator: simulator.New,
		AccessLog:    os.Stderr,
	}
}

func (e *Env) simulator() *simulator.Simulator {
	sim := e.NewSimulator()
	sim.Log = e.Log
	return sim
}
