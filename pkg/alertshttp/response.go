package alertshttp

import (
	"encoding/json"
	"errors"
	"net/http"
)

// envelope mirrors the JSON body shape used across the API.
type envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *errorDetail   `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, ErrInvalidRequest):
		status, code = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, ErrAlertNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, ErrNoScope):
		status, code = http.StatusUnauthorized, "no_scope"
	case errors.Is(err, ErrStreamNotEnabled):
		status, code = http.StatusNotImplemented, "stream_not_enabled"
	}
	writeJSON(w, status, envelope{Error: &errorDetail{Code: code, Message: err.Error()}})
}
