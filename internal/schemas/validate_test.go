package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVDocumentSchema_IsValidJSON(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(CVDocumentSchema), &parsed))
	assert.Equal(t, "object", parsed["type"])
	_, err := compiledCVSchema()
	require.NoError(t, err)
}

func TestValidateCVDocument(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantField string
	}{
		{
			name: "valid full document",
			doc: `{
				"personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com"},
				"experience": [{"id": "e1", "company": "Acme", "startDate": "2020-01", "endDate": "", "current": true}],
				"education": [{"id": "d1", "school": "MIT", "gpa": "3.8"}],
				"skills": ["Go", "SQL"]
			}`,
		},
		{name: "empty object", doc: `{}`},
		{name: "bad month", doc: `{"experience": [{"id": "e1", "startDate": "2020-13"}]}`, wantField: "experience.0.startDate"},
		{name: "missing id", doc: `{"education": [{"school": "MIT"}]}`, wantField: "education.0"},
		{name: "duplicate skills", doc: `{"skills": ["Go", "Go"]}`, wantField: "skills"},
		{name: "empty skill", doc: `{"skills": [""]}`, wantField: "skills.0"},
		{name: "unknown field", doc: `{"photo": "me.png"}`, wantField: "(root)"},
		{name: "gpa must be a string", doc: `{"education": [{"id": "d1", "gpa": 3.8}]}`, wantField: "education.0.gpa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCVDocument([]byte(tt.doc))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			fields := make([]string, 0, len(verr.Errors))
			for _, fe := range verr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidateCVDocument_MalformedJSON(t *testing.T) {
	err := ValidateCVDocument([]byte(`{"skills": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{}`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "name")

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
