// internal/handler/errors.go
package handler

import (
	"errors"
	"net/http"

	"github.com/asadkovich/task-manager/internal/models"
	"github.com/asadkovich/task-manager/internal/repository"
	"github.com/asadkovich/task-manager/internal/service"
)

// writeErr maps domain errors to HTTP statuses in one place. Anything
// unrecognized is a storage or internal failure.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyTitle), errors.Is(err, models.ErrInvalidStatus):
		respondError(w, "validation_error", err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrDuplicateLogin):
		respondError(w, "duplicate_login", err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrTaskNotFound), errors.Is(err, repository.ErrUserNotFound):
		respondError(w, "not_found", err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		respondError(w, "unauthorized", err.Error(), http.StatusUnauthorized)
	default:
		respondError(w, "internal_error", "internal server error", http.StatusInternalServerError)
	}
}
