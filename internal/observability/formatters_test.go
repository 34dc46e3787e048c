package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.CVDocument{
		PersonalInfo: types.PersonalInfo{FullName: "Jane Doe", Title: "Staff Engineer", Email: "jane@example.com"},
		Experience: []types.ExperienceEntry{
			{ID: "1", Company: "Acme", Position: "Engineer", StartDate: "2020-01", EndDate: "2022-06"},
			{ID: "2", Company: "Globex", Position: "Lead", StartDate: "2022-07", Current: true},
		},
		Education: []types.EducationEntry{{ID: "e", School: "State University", Degree: "BSc"}},
		Skills:    []string{"Go", "Kubernetes"},
	}

	p.PrintDocument(doc, types.TemplateModern)
	output := buf.String()

	assert.Contains(t, output, "CV DOCUMENT")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Template: Modern")
	assert.Contains(t, output, "Experience (2):")
	assert.Contains(t, output, "Engineer, Acme (Jan 2020 - Jun 2022)")
	assert.Contains(t, output, "Lead, Globex (Jul 2022 - Present)")
	assert.Contains(t, output, "BSc, State University")
	assert.Contains(t, output, "Go, Kubernetes")
}

func TestPrintDocument_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := types.NewCVDocument()
	p.PrintDocument(&doc, types.TemplateClassic)

	assert.Contains(t, buf.String(), "(unnamed)")
	assert.NotContains(t, buf.String(), "Experience")
}

func TestPrintDocument_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(nil, types.TemplateClassic)

	assert.Empty(t, buf.String())
}

func TestPrintDocument_ManyEntries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := types.NewCVDocument()
	for i := 0; i < 8; i++ {
		doc.Experience = append(doc.Experience, types.ExperienceEntry{ID: fmt.Sprint(i), Company: fmt.Sprintf("Co%d", i), Position: "Dev"})
	}
	p.PrintDocument(&doc, types.TemplateClassic)

	output := buf.String()
	assert.Contains(t, output, "Co4")
	assert.NotContains(t, output, "Co5")
	assert.Contains(t, output, "... and 3 more")
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProgress(export.ProgressEvent{Step: export.StepPaginate, Message: "Mapped height 594.00mm across 2 page(s)"})

	assert.Equal(t, "→ paginate  Mapped height 594.00mm across 2 page(s)\n", buf.String())
}

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLayout(900, []export.Placement{
		{Page: 0, OffsetY: 0},
		{Page: 1, OffsetY: -297},
		{Page: 2, OffsetY: -594},
		{Page: 3, OffsetY: -891},
	})
	output := buf.String()

	assert.Contains(t, output, "PAGE LAYOUT")
	assert.Contains(t, output, "Mapped height: 900.00mm")
	assert.Contains(t, output, "Pages:         4")
	assert.Contains(t, output, "Page 4  image offset -891.00mm")
}

func TestPrintExportResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExportResult(&export.Result{
		FileName:     "Jane_Doe_CV.pdf",
		Location:     "out/Jane_Doe_CV.pdf",
		Pages:        2,
		Bytes:        150 * 1024,
		BitmapWidth:  1588,
		BitmapHeight: 4492,
	})
	output := buf.String()

	assert.Contains(t, output, "EXPORT RESULT")
	assert.Contains(t, output, "Jane_Doe_CV.pdf")
	assert.Contains(t, output, "1588x4492 px")
	assert.Contains(t, output, "Pages:    2")
	assert.Contains(t, output, "150.0 KB")
}

func TestPrintValidation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "valid",
			err:      nil,
			contains: []string{"DOCUMENT IS VALID"},
		},
		{
			name: "document errors",
			err: &types.ValidationError{Errors: []types.FieldError{
				{Field: "PersonalInfo.Email", Message: "must be a valid email address"},
				{Field: "Skills", Message: "entries must be unique"},
			}},
			contains: []string{"VALIDATION ERRORS", "Found 2 problems", "PersonalInfo.Email", "entries must be unique"},
		},
		{
			name:     "schema errors",
			err:      &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "experience.0.startDate", Message: "Does not match pattern"}}},
			contains: []string{"Found 1 problems", "experience.0.startDate"},
		},
		{
			name:     "other error",
			err:      fmt.Errorf("read cv.yaml: permission denied"),
			contains: []string{"VALIDATION FAILED", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintValidation(tt.err)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TEST", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "2.0 KB", formatBytes(2048))
	assert.Equal(t, "1.5 MB", formatBytes(3<<19))
}
