// Package browser renders preview HTML in headless Chrome and captures the CV region.
// A *Page satisfies export.Surface.
package browser

import "fmt"

// BrowserError wraps a failed Chrome operation.
type BrowserError struct {
	Op    string
	Cause error
}

func (e *BrowserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("browser %s failed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("browser %s failed", e.Op)
}

func (e *BrowserError) Unwrap() error {
	return e.Cause
}
