package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/streamfront/internal/services"
	"github.com/desertthunder/streamfront/internal/shared"
)

type errorBody struct {
	Error string `json:"error"`
}

// envelope mirrors the upstream's collection response.
type envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps an error to the status returned to the browser.
//
// Upstream auth rejections and 404s pass through; any other upstream failure is a 502.
func statusFor(err error) int {
	var se *services.StatusError
	switch {
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotAuthenticated), errors.Is(err, shared.ErrAuthFailed), errors.Is(err, shared.ErrInvalidState):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrFavoriteNotFound):
		return http.StatusNotFound
	case errors.As(err, &se):
		switch se.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return se.StatusCode
		}
		return http.StatusBadGateway
	case errors.Is(err, shared.ErrAPIRequest):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and answers with a JSON error body.
//
// Server-side failures are reported with a generic message; client errors carry the error text.
func writeError(w http.ResponseWriter, logger *log.Logger, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= 500 {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
		msg = http.StatusText(status)
	} else {
		logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, errorBody{Error: msg})
}
