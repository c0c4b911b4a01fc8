package web

import (
	"bytes"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/datadash/datadash/internal/chartdoc"
	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/errors"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/blake2b"
)

// Chart service routes.
const (
	PathIndex     = "/"
	PathChartData = "/get_chart_data"
	PathChartPNG  = "/chart.png"
	PathRealtime  = "/api/realtime"
	PathUpload    = "/api/upload"
	PathHealth    = "/health"
	PathMetrics   = "/metrics"
)

// NewChartRouter builds the chart service: the HTML shell, the chart
// document, a PNG rendering, the realtime stream, CSV upload, health and
// metrics.
func NewChartRouter(env *Env) http.Handler {
	r := mux.NewRouter()
	r.Use(env.Metrics.Middleware)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc(PathIndex, chartIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(PathChartData, env.chartData).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(PathChartPNG, env.chartPNG).Methods(http.MethodGet)
	r.HandleFunc(PathRealtime, env.realtime).Methods(http.MethodGet)
	r.HandleFunc(PathUpload, env.upload).Methods(http.MethodPost)
	r.HandleFunc(PathHealth, health).Methods(http.MethodGet, http.MethodHead)
	if env.Metrics != nil {
		r.Handle(PathMetrics, env.Metrics.Handler()).Methods(http.MethodGet)
	}

	return wrap(withCORS(r, env.Config.Chart.AllowedOrigins), env.AccessLog, env.Log)
}

func chartIndex(w http.ResponseWriter, r *http.Request) {
	page, err := templateFS.ReadFile("templates/chart.html")
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// DailySeries draws the configured daily series. The generator is seeded
// afresh on every call, so every request sees the same values.
func DailySeries(c config.ChartConfig) (chartdoc.Series, error) {
	start, end, err := c.ChartRange()
	if err != nil {
		return chartdoc.Series{}, errors.WrapWithCode(err, errors.ErrConfig, "Invalid chart date range", "Use YYYY-MM-DD dates")
	}
	return chartdoc.DailySeries(c.Seed, start, end, c.Mean, c.StdDev), nil
}

// ChartDocument returns the JSON chart document for c.
func ChartDocument(c config.ChartConfig) ([]byte, error) {
	series, err := DailySeries(c)
	if err != nil {
		return nil, err
	}
	body, err := chartdoc.LineFigure(series, chartdoc.DefaultLineOptions(c.Title)).JSON()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHTTP, "Failed to encode chart", "")
	}
	return body, nil
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// etagMatches reports whether an If-None-Match header value covers tag.
func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}

func (e *Env) chartData(w http.ResponseWriter, r *http.Request) {
	body, err := ChartDocument(e.Config.Chart)
	if err != nil {
		e.Log.Error("chart document: %v", err)
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	tag := ETag(body)
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "no-cache")

	if inm := r.Header.Get("If-None-Match"); inm != "" && etagMatches(inm, tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func (e *Env) chartPNG(w http.ResponseWriter, r *http.Request) {
	series, err := DailySeries(e.Config.Chart)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := chartdoc.RenderPNG(&buf, series, chartdoc.DefaultPNGOptions(e.Config.Chart.Title)); err != nil {
		e.Log.Error("chart png: %v", err)
		writeErr(w, http.StatusInternalServerError, errors.WrapWithCode(err, errors.ErrHTTP, "Failed to render chart", ""))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
