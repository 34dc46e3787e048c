package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/types"
)

func TestErrSessionNotFound(t *testing.T) {
	err := &ErrSessionNotFound{ID: "abc"}
	assert.Equal(t, "session not found: abc", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "step", Message: "step is required"}
	assert.Equal(t, "validation error: step - step is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "entry not found", err: cvstate.ErrEntryNotFound, expected: http.StatusNotFound},
		{name: "wrapped entry not found", err: fmt.Errorf("update: %w", cvstate.ErrEntryNotFound), expected: http.StatusNotFound},
		{name: "step out of range", err: cvstate.ErrStepOutOfRange, expected: http.StatusBadRequest},
		{name: "unknown template", err: cvstate.ErrUnknownTemplate, expected: http.StatusBadRequest},
		{name: "document invalid", err: &types.ValidationError{}, expected: http.StatusBadRequest},
		{name: "export in progress", err: cvstate.ErrExportInProgress, expected: http.StatusConflict},
		{name: "export gate busy", err: export.ErrBusy, expected: http.StatusConflict},
		{name: "Unknown error", err: assert.AnError, expected: http.StatusInternalServerError},
		{name: "Nil error", err: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
