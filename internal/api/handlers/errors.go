package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"technews/internal/api/httpx"
	"technews/internal/repository"
	"technews/internal/services"
)

// writeServiceError maps the error taxonomy onto HTTP statuses:
// validation 400, conflict 409, not-found 404, bad credentials 400.
// Anything else is an unexpected failure: logged server-side, generic
// 500 to the client, no retry.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, repository.ErrDuplicateEmail):
		httpx.WriteError(w, http.StatusConflict, "conflict", repository.ErrDuplicateEmail.Error(), nil)
	case errors.Is(err, repository.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusBadRequest, "auth_error", "invalid credentials", nil)
	default:
		slog.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
