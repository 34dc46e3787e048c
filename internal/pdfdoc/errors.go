// Package pdfdoc assembles raster pages into a PDF document.
package pdfdoc

import "fmt"

// WriteError is returned when the underlying PDF library rejects an operation.
type WriteError struct {
	Op    string
	Cause error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("pdf %s failed", e.Op)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
