// Package cvstate holds the editing state of the CV builder and the pure operations
// that move it forward. Every operation takes a State and returns a new one; the
// input is never modified.
package cvstate

import "errors"

var (
	// ErrEntryNotFound is returned when an experience or education id is unknown.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrStepOutOfRange is returned when jumping to a step index that does not exist.
	ErrStepOutOfRange = errors.New("step out of range")

	// ErrUnknownTemplate is returned when selecting a template tag that is not offered.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrExportInProgress is returned when an export is requested while one is outstanding.
	ErrExportInProgress = errors.New("export already in progress")
)
