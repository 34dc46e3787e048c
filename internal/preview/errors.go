// Package preview renders a CV document into the styled HTML region that is shown to
// the user and captured by the export pipeline.
package preview

import "fmt"

// RenderError represents a failure to execute one of the layout templates.
type RenderError struct {
	Template string
	Cause    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: template %s: %v", e.Template, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
