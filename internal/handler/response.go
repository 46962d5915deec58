package handler

// RESPONSE HELPERS:
// Every response from this API — success or failure — uses one envelope:
//
//	{"success": true,  "message": "Berita berhasil dibuat", "data": {...}}
//	{"success": false, "message": "Berita not found"}
//
// The front-end branches on `success` and displays `message` verbatim, so
// the strings here (and in the services) are part of the contract.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
)

// Envelope is the standard response shape. Message and Data are omitted
// when empty — list endpoints send data with no message, deletes send a
// message with no data.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeJSON sends v with the given status. Headers must be set before the
// first body write, hence the fixed order here.
func writeJSON(w http.ResponseWriter, status int, v Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already gone out — all we can do is log.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeSuccess sends a success envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// writeError maps a domain error to an HTTP status and sends the failure
// envelope. This is the single boundary where error kinds become status
// codes — services know nothing about HTTP.
//
// Only the AppError message of the client-facing kinds (validation,
// not-found, credentials) reaches the body. Upstream and unknown failures
// are logged and answered with a generic 500 — internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: appErr.Message})
			return
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, Envelope{Success: false, Message: appErr.Message})
			return
		case errors.Is(err, apperror.ErrUnauthenticated), errors.Is(err, apperror.ErrBadCredentials):
			writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: appErr.Message})
			return
		case errors.Is(err, apperror.ErrUpstream):
			slog.Error("upstream provider call failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, Envelope{Success: false, Message: "Internal Server Error"})
			return
		}
	}

	slog.Error("unexpected handler error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, Envelope{Success: false, Message: "Internal Server Error"})
}
