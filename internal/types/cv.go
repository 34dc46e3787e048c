// Package types provides type definitions for the CV data edited by the builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "slices"

// PersonalInfo holds the singleton header block of a CV.
type PersonalInfo struct {
	FullName string `json:"fullName" yaml:"fullName"`
	Email    string `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	Title    string `json:"title" yaml:"title"`
	Summary  string `json:"summary" yaml:"summary"`
}

// ExperienceEntry is one position in the work history.
// Dates use month granularity ("2023-03"). When Current is set, EndDate is ignored for display.
type ExperienceEntry struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Company     string `json:"company" yaml:"company"`
	Position    string `json:"position" yaml:"position"`
	StartDate   string `json:"startDate" yaml:"startDate" validate:"omitempty,datetime=2006-01"`
	EndDate     string `json:"endDate" yaml:"endDate" validate:"omitempty,datetime=2006-01"`
	Current     bool   `json:"current" yaml:"current"`
	Description string `json:"description" yaml:"description"`
}

// EducationEntry is one entry of the academic background.
type EducationEntry struct {
	ID        string `json:"id" yaml:"id" validate:"required"`
	School    string `json:"school" yaml:"school"`
	Degree    string `json:"degree" yaml:"degree"`
	Field     string `json:"field" yaml:"field"`
	StartDate string `json:"startDate" yaml:"startDate" validate:"omitempty,datetime=2006-01"`
	EndDate   string `json:"endDate" yaml:"endDate" validate:"omitempty,datetime=2006-01"`
	GPA       string `json:"gpa,omitempty" yaml:"gpa,omitempty"`
}

// CVDocument is the aggregate root edited by the form and rendered by the preview.
type CVDocument struct {
	PersonalInfo PersonalInfo      `json:"personalInfo" yaml:"personalInfo"`
	Experience   []ExperienceEntry `json:"experience" yaml:"experience" validate:"unique=ID,dive"`
	Education    []EducationEntry  `json:"education" yaml:"education" validate:"unique=ID,dive"`
	Skills       []string          `json:"skills" yaml:"skills" validate:"unique,dive,required"`
}

// IsEmpty reports whether nothing has been entered yet: no name and no list entries.
// Other personal fields do not count, matching what the preview treats as blank.
func (d *CVDocument) IsEmpty() bool {
	return d.PersonalInfo.FullName == "" &&
		len(d.Experience) == 0 &&
		len(d.Education) == 0 &&
		len(d.Skills) == 0
}

// Clone returns a deep copy whose slices can be modified without touching d.
// Nil slices are normalized to empty ones so JSON output always carries arrays.
func (d CVDocument) Clone() CVDocument {
	out := d
	out.Experience = append(make([]ExperienceEntry, 0, len(d.Experience)), d.Experience...)
	out.Education = append(make([]EducationEntry, 0, len(d.Education)), d.Education...)
	out.Skills = append(make([]string, 0, len(d.Skills)), d.Skills...)
	return out
}

// HasSkill reports whether skill is already present (exact, case-sensitive match).
func (d *CVDocument) HasSkill(skill string) bool {
	return slices.Contains(d.Skills, skill)
}

// NewCVDocument returns an empty document with non-nil lists.
func NewCVDocument() CVDocument {
	return CVDocument{
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Skills:     []string{},
	}
}
