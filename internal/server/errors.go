package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/types"
)

// ErrSessionNotFound indicates an unknown session id
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *ErrSessionNotFound
	var invalid *ErrValidation
	var docInvalid *types.ValidationError

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &notFound), errors.Is(err, cvstate.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &docInvalid),
		errors.Is(err, cvstate.ErrStepOutOfRange), errors.Is(err, cvstate.ErrUnknownTemplate):
		return http.StatusBadRequest
	case errors.Is(err, cvstate.ErrExportInProgress), errors.Is(err, export.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
