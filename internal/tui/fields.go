package tui

import (
	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/types"
)

// field binds one text input to a string in the document.
type field struct {
	label       string
	placeholder string
	get         func(doc *types.CVDocument, entry int) string
	set         func(st cvstate.State, entry int, value string) cvstate.State
}

var personalFields = []field{
	personalField("Full name", "Jane Doe", func(p *types.PersonalInfo) *string { return &p.FullName }),
	personalField("Email", "jane@example.com", func(p *types.PersonalInfo) *string { return &p.Email }),
	personalField("Phone", "+1 555 0100", func(p *types.PersonalInfo) *string { return &p.Phone }),
	personalField("Location", "Berlin, Germany", func(p *types.PersonalInfo) *string { return &p.Location }),
	personalField("Title", "Senior Engineer", func(p *types.PersonalInfo) *string { return &p.Title }),
	personalField("Summary", "A short professional summary", func(p *types.PersonalInfo) *string { return &p.Summary }),
}

var experienceFields = []field{
	experienceField("Company", "Acme Corp", func(e *types.ExperienceEntry) *string { return &e.Company }),
	experienceField("Position", "Software Engineer", func(e *types.ExperienceEntry) *string { return &e.Position }),
	experienceField("Start date", "YYYY-MM", func(e *types.ExperienceEntry) *string { return &e.StartDate }),
	experienceField("End date", "YYYY-MM", func(e *types.ExperienceEntry) *string { return &e.EndDate }),
	experienceField("Description", "What you did and achieved", func(e *types.ExperienceEntry) *string { return &e.Description }),
}

var educationFields = []field{
	educationField("School", "State University", func(e *types.EducationEntry) *string { return &e.School }),
	educationField("Degree", "BSc", func(e *types.EducationEntry) *string { return &e.Degree }),
	educationField("Field", "Computer Science", func(e *types.EducationEntry) *string { return &e.Field }),
	educationField("Start date", "YYYY-MM", func(e *types.EducationEntry) *string { return &e.StartDate }),
	educationField("End date", "YYYY-MM", func(e *types.EducationEntry) *string { return &e.EndDate }),
	educationField("GPA", "optional", func(e *types.EducationEntry) *string { return &e.GPA }),
}

var skillFields = []field{{
	label:       "New skill",
	placeholder: "Type a skill and press enter",
	get:         func(*types.CVDocument, int) string { return "" },
	set:         func(st cvstate.State, _ int, _ string) cvstate.State { return st },
}}

// fieldsFor returns the inputs shown on a step.
func fieldsFor(stepID string) []field {
	switch stepID {
	case "personal":
		return personalFields
	case "experience":
		return experienceFields
	case "education":
		return educationFields
	default:
		return skillFields
	}
}

func personalField(label, placeholder string, ref func(*types.PersonalInfo) *string) field {
	return field{
		label:       label,
		placeholder: placeholder,
		get: func(doc *types.CVDocument, _ int) string {
			return *ref(&doc.PersonalInfo)
		},
		set: func(st cvstate.State, _ int, value string) cvstate.State {
			return cvstate.UpdatePersonalInfo(st, func(p *types.PersonalInfo) { *ref(p) = value })
		},
	}
}

func experienceField(label, placeholder string, ref func(*types.ExperienceEntry) *string) field {
	return field{
		label:       label,
		placeholder: placeholder,
		get: func(doc *types.CVDocument, entry int) string {
			if entry < 0 || entry >= len(doc.Experience) {
				return ""
			}
			return *ref(&doc.Experience[entry])
		},
		set: func(st cvstate.State, entry int, value string) cvstate.State {
			if entry < 0 || entry >= len(st.Document.Experience) {
				return st
			}
			id := st.Document.Experience[entry].ID
			next, err := cvstate.UpdateExperience(st, id, func(e *types.ExperienceEntry) { *ref(e) = value })
			if err != nil {
				return st
			}
			return next
		},
	}
}

func educationField(label, placeholder string, ref func(*types.EducationEntry) *string) field {
	return field{
		label:       label,
		placeholder: placeholder,
		get: func(doc *types.CVDocument, entry int) string {
			if entry < 0 || entry >= len(doc.Education) {
				return ""
			}
			return *ref(&doc.Education[entry])
		},
		set: func(st cvstate.State, entry int, value string) cvstate.State {
			if entry < 0 || entry >= len(st.Document.Education) {
				return st
			}
			id := st.Document.Education[entry].ID
			next, err := cvstate.UpdateEducation(st, id, func(e *types.EducationEntry) { *ref(e) = value })
			if err != nil {
				return st
			}
			return next
		},
	}
}
