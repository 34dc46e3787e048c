package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidDocument(t *testing.T) {
	doc := sampleDocument()
	assert.NoError(t, doc.Validate())
}

func TestValidate_EmptyDocument(t *testing.T) {
	doc := NewCVDocument()
	assert.NoError(t, doc.Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *CVDocument)
		field   string
		message string
	}{
		{
			name:    "bad email",
			mutate:  func(d *CVDocument) { d.PersonalInfo.Email = "not-an-email" },
			field:   "PersonalInfo.Email",
			message: "valid email",
		},
		{
			name:    "day precision date",
			mutate:  func(d *CVDocument) { d.Experience[0].StartDate = "2020-01-15" },
			field:   "Experience[0].StartDate",
			message: "YYYY-MM",
		},
		{
			name:    "duplicate experience id",
			mutate:  func(d *CVDocument) { d.Experience[1].ID = d.Experience[0].ID },
			field:   "Experience",
			message: "unique",
		},
		{
			name:    "duplicate skill",
			mutate:  func(d *CVDocument) { d.Skills = append(d.Skills, "Go") },
			field:   "Skills",
			message: "unique",
		},
		{
			name:    "blank skill",
			mutate:  func(d *CVDocument) { d.Skills = append(d.Skills, "") },
			field:   "Skills[2]",
			message: "required",
		},
		{
			name:    "missing education id",
			mutate:  func(d *CVDocument) { d.Education[0].ID = "" },
			field:   "Education[0].ID",
			message: "required",
		},
		{
			name:    "experience ends before it starts",
			mutate:  func(d *CVDocument) { d.Experience[0].EndDate = "2019-12" },
			field:   "Experience[0].EndDate",
			message: "start date",
		},
		{
			name:    "education ends before it starts",
			mutate:  func(d *CVDocument) { d.Education[0].EndDate = "2010-01" },
			field:   "Education[0].EndDate",
			message: "start date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			tt.mutate(&doc)

			err := doc.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.NotEmpty(t, verr.Errors)

			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.field {
					found = true
					assert.Contains(t, fe.Message, tt.message)
				}
			}
			assert.True(t, found, "expected error on %s, got %v", tt.field, verr.Errors)
		})
	}
}

func TestValidate_CurrentIgnoresEndDate(t *testing.T) {
	doc := sampleDocument()
	doc.Experience[1].EndDate = "2001-01"
	doc.Experience[1].Current = true
	assert.NoError(t, doc.Validate())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "Skills", Message: "entries must be unique"}}}
	assert.Equal(t, "validation failed: Skills: entries must be unique", err.Error())
}
