package types

import "fmt"

// Template selects one of the preview layout variants.
type Template string

const (
	TemplateClassic Template = "classic"
	TemplateModern  Template = "modern"
	TemplateMinimal Template = "minimal"
)

// DefaultTemplate is used when no variant has been chosen.
const DefaultTemplate = TemplateClassic

// Templates lists the variants in display order.
var Templates = []Template{TemplateClassic, TemplateModern, TemplateMinimal}

// Valid reports whether t is a known variant.
func (t Template) Valid() bool {
	switch t {
	case TemplateClassic, TemplateModern, TemplateMinimal:
		return true
	}
	return false
}

// ParseTemplate converts a tag into a Template. An empty tag yields the default.
func ParseTemplate(s string) (Template, error) {
	if s == "" {
		return DefaultTemplate, nil
	}
	t := Template(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown template %q (want one of classic, modern, minimal)", s)
	}
	return t, nil
}

// TemplateInfo describes a variant for the template selector.
type TemplateInfo struct {
	ID          Template `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// Info returns the display metadata for t.
func (t Template) Info() TemplateInfo {
	switch t {
	case TemplateModern:
		return TemplateInfo{ID: t, Name: "Modern", Description: "Bold and contemporary"}
	case TemplateMinimal:
		return TemplateInfo{ID: t, Name: "Minimal", Description: "Clean and elegant"}
	default:
		return TemplateInfo{ID: TemplateClassic, Name: "Classic", Description: "Traditional and professional"}
	}
}
