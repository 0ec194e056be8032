package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"deadlock-tracker/internal/api"

	"github.com/rs/zerolog"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}

// badRequest is for input the handler rejected before calling a service.
func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, r, http.StatusBadRequest, errorBody{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: message,
	})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	writeJSON(w, r, status, errorBody{
		Error:   http.StatusText(status),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	var rateLimited *api.RateLimitError
	switch {
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests
	case api.IsNotFound(err):
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
