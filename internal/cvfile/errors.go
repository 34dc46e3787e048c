// Package cvfile reads and writes CV documents as JSON or YAML files.
package cvfile

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for file extensions other than .json, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadError represents a failure to read, parse or validate a document file.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
