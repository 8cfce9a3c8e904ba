package handler

// Response helpers shared by all handlers. Success bodies are shaped
// {"message": ...} (or a payload object); failures are {"error": ...}
// or, for aggregated validation failures, a field-keyed message map.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yaronsh/mediahub/internal/apperror"
)

// errorResponse is the single-error failure body.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the standard success body.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent at this point; log and move on.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeError maps a domain error to its HTTP response.
//
// The apperror sentinels decide the status; conflicts are reported as
// 400 like validation failures, matching the client contract. An
// AppError carrying a Fields map becomes the field-keyed error body
// the settings client expects. Anything untyped is a 500 with a
// generic body — internal details never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}

		if len(appErr.Fields) > 0 {
			writeJSON(w, status, appErr.Fields)
			return
		}

		writeJSON(w, status, errorResponse{Error: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "An internal error occurred"})
}
