package cvfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// Format is a supported on-disk encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a document from path. List entries without an id get a fresh one.
// The file is checked against the document schema before it is decoded and against
// the field rules afterwards.
func Load(path string) (*types.CVDocument, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "unknown format", Cause: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid document", Cause: err}
	}
	return doc, nil
}

// Parse decodes and validates document bytes in the given format.
func Parse(data []byte, format Format) (*types.CVDocument, error) {
	var raw any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	fillMissingIDs(raw)

	// Normalize to JSON so both formats go through one schema and one decoder.
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}
	if err := schemas.ValidateCVDocument(normalized); err != nil {
		return nil, err
	}

	doc := types.NewCVDocument()
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc = doc.Clone()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func fillMissingIDs(raw any) {
	root, ok := raw.(map[string]any)
	if !ok {
		return
	}
	for _, key := range []string{"experience", "education"} {
		entries, ok := root[key].([]any)
		if !ok {
			continue
		}
		for _, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if id, _ := entry["id"].(string); id == "" {
				entry["id"] = uuid.NewString()
			}
		}
	}
}

// Marshal encodes doc in the given format.
func Marshal(doc *types.CVDocument, format Format) ([]byte, error) {
	out := doc.Clone()
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(out)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes doc to path, choosing the format from the extension.
func Save(path string, doc *types.CVDocument) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
