// Package export turns the rendered CV region into a paginated A4 PDF.
//
// The region is cloned offscreen, rasterized once at an oversampling factor on an opaque
// background, and the single bitmap is tiled across as many pages as its scaled height
// needs. Nothing is saved unless every stage succeeds.
package export

import (
	"errors"
	"fmt"
)

// UserMessage is the only failure text shown to people downloading their CV.
const UserMessage = "Failed to download CV. Please try again."

var (
	// ErrInvalidFileName is returned by savers for names that are empty or contain path separators.
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrBusy is returned when an export is requested while another one holds the gate.
	ErrBusy = errors.New("export already in progress")
)

// ExportError wraps a failure of one pipeline stage.
type ExportError struct {
	Stage string
	Cause error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed during %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("export failed during %s", e.Stage)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
