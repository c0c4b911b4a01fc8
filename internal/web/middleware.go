package web

import (
	"fmt"
	"io"
	"net/http"

	"github.com/datadash/datadash/internal/logger"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
)

// RequestIDHeader carries the per-request id back to the client.
const RequestIDHeader = "X-Request-ID"

// recoveryLogger adapts Logger to handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	log logger.Logger
}

func (l recoveryLogger) Println(args ...interface{}) {
	l.log.Error("panic serving request: %s", fmt.Sprint(args...))
}

// requestID tags every response with a request id, reusing the client's
// when it sent one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// wrap applies the middleware shared by both services, outermost first:
// access log, panic recovery, request id.
func wrap(h http.Handler, accessLog io.Writer, log logger.Logger) http.Handler {
	h = requestID(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log: log}),
		handlers.PrintRecoveryStack(false),
	)(h)
	if accessLog != nil {
		h = handlers.CombinedLoggingHandler(accessLog, h)
	}
	return h
}

// withCORS allows the configured origins to call the chart API from a page
// served elsewhere.
func withCORS(h http.Handler, origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag", RequestIDHeader},
	})
	return c.Handler(h)
}
