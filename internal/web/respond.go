package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/datadash/datadash/internal/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before touching the response, so an unencodable
// value becomes a 500 with an error body instead of an empty reply.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorBody{
			Code:    errors.ErrHTTP,
			Message: "failed to encode response: " + err.Error(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

// writeErr reports a structured error, falling back to a generic code.
func writeErr(w http.ResponseWriter, status int, err error) {
	code := errors.CodeOf(err)
	if code == "" {
		code = errors.ErrHTTP
	}
	message := err.Error()
	var ddErr *errors.Error
	if stderrors.As(err, &ddErr) {
		message = ddErr.Message
		if ddErr.Cause != nil {
			message += ": " + ddErr.Cause.Error()
		}
	}
	writeError(w, status, code, message)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, errors.ErrHTTP, "no route for "+r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, errors.ErrHTTP, r.Method+" not allowed on "+r.URL.Path)
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
