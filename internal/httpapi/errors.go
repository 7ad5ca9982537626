package httpapi

import (
	"encoding/json"
	"net/http"

	"plannerd/internal/session"
	"plannerd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// sessionErrorStatus maps session-manager errors to HTTP status codes.
func sessionErrorStatus(err error) int {
	switch {
	case session.IsFileNotFound(err):
		return http.StatusNotFound
	case session.IsAlreadyLoading(err), session.IsNoModelLoaded(err):
		return http.StatusConflict
	case session.IsGenerationBusy(err):
		return http.StatusTooManyRequests
	case session.IsBackendUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		if he, ok := err.(HTTPError); ok {
			return he.StatusCode()
		}
		return http.StatusInternalServerError
	}
}
