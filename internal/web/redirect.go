package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/datadash/datadash/internal/errors"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

var redirectTemplate = template.Must(template.ParseFS(templateFS, "templates/redirect.html"))

type redirectPage struct {
	Target string
	Title  string
}

// RenderRedirect renders the meta-refresh page for target.
func RenderRedirect(target, title string) ([]byte, error) {
	var buf bytes.Buffer
	if err := redirectTemplate.Execute(&buf, redirectPage{Target: target, Title: title}); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHTTP, "Failed to render redirect page", "")
	}
	return buf.Bytes(), nil
}

// NewRedirectRouter serves the redirect page at / and a health check.
// Everything else is a 404.
func NewRedirectRouter(env *Env) (http.Handler, error) {
	page, err := RenderRedirect(env.Config.Redirect.Target, env.Config.Redirect.Title)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Use(env.Metrics.Middleware)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)
	}).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/health", health).Methods(http.MethodGet, http.MethodHead)

	return wrap(r, env.AccessLog, env.Log), nil
}
