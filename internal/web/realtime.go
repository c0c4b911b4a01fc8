package web

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/simulator"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// MinStreamInterval keeps a single client from spinning the server.
	MinStreamInterval = 10 * time.Millisecond
)

func (e *Env) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     e.checkOrigin,
	}
}

// checkOrigin admits same-host pages, clients that send no Origin, and the
// origins listed in chart.allowed_origins ("*" admits all).
func (e *Env) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range e.Config.Chart.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimSuffix(allowed, "/"), origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

// StreamParams are the realtime query parameters after defaults.
type StreamParams struct {
	Steps    int
	Interval time.Duration
}

// ParseStreamParams reads steps and interval from the query, falling back to
// the simulator config. interval accepts a Go duration ("250ms") or a bare
// number of milliseconds.
func ParseStreamParams(r *http.Request, defaults config.SimulatorConfig) (StreamParams, error) {
	p := StreamParams{Steps: defaults.Steps, Interval: defaults.Interval}
	q := r.URL.Query()

	if s := q.Get("steps"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, errors.Newf(errors.ErrHTTP, "steps %q is not a whole number", s)
		}
		p.Steps = n
	}
	if s := q.Get("interval"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			ms, msErr := strconv.Atoi(s)
			if msErr != nil {
				return p, errors.Newf(errors.ErrHTTP, "interval %q is not a duration", s)
			}
			d = time.Duration(ms) * time.Millisecond
		}
		p.Interval = d
	}

	if p.Steps < 0 || p.Steps > config.MaxSimulatorSteps {
		return p, errors.Newf(errors.ErrHTTP, "steps must be between 0 and %d", config.MaxSimulatorSteps)
	}
	if p.Steps > 0 && p.Interval < MinStreamInterval {
		return p, errors.Newf(errors.ErrHTTP, "interval must be at least %s", MinStreamInterval)
	}
	return p, nil
}

// realtime upgrades to a websocket and streams one simulator run, one JSON
// frame per iteration, then closes normally. A client disconnect cancels
// the run.
func (e *Env) realtime(w http.ResponseWriter, r *http.Request) {
	params, err := ParseStreamParams(r, e.Config.Simulator)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	conn, err := e.upgrader().Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		e.Log.Warn("realtime upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reads are only for noticing the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
					e.Log.Debug("realtime read: %v", err)
				}
				return
			}
		}
	}()

	sink := simulator.SinkFunc(func(_ context.Context, f simulator.Frame) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(f); err != nil {
			return err
		}
		e.Metrics.SimFrame()
		return nil
	})

	series, err := e.simulator().Run(ctx, params.Steps, params.Interval, sink)

	closeCode, reason, outcome := websocket.CloseNormalClosure, "done", "completed"
	switch {
	case err == nil:
	case ctx.Err() != nil:
		outcome = "cancelled"
	default:
		closeCode, reason, outcome = websocket.CloseInternalServerErr, "stream failed", "failed"
		e.Log.Warn("realtime stream: %v", err)
	}
	e.Metrics.SimRun(outcome)
	e.Log.Debug("realtime stream %s after %d frames", outcome, series.Len())

	if outcome == "cancelled" {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(closeCode, reason),
		time.Now().Add(writeWait))
}
