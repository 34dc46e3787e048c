// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs a human-readable summary of a CV document and its layout.
func (p *Printer) PrintDocument(doc *types.CVDocument, tmpl types.Template) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	info := doc.PersonalInfo
	name := info.FullName
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if info.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", info.Title))
	}
	if info.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", info.Email))
	}
	sb.WriteString(fmt.Sprintf("Template: %s\n", tmpl.Info().Name))
	sb.WriteString("\n")

	if len(doc.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(doc.Experience)))
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s", exp.Position, exp.Company))
			if exp.StartDate != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", preview.DateRange(exp.StartDate, exp.EndDate, exp.Current)))
			}
			sb.WriteString("\n")
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(doc.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(doc.Education)))
		count := min(len(doc.Education), 3)
		for i := 0; i < count; i++ {
			edu := doc.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", edu.Degree, edu.School))
		}
		if len(doc.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Education)-3))
		}
		sb.WriteString("\n")
	}

	if len(doc.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", strings.Join(doc.Skills, ", ")))
	}

	p.printBox("CV DOCUMENT", strings.TrimSuffix(strings.TrimSuffix(sb.String(), "\n"), "\n"))
}

// PrintProgress outputs one line per export stage.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(ev export.ProgressEvent) {
	fmt.Fprintf(p.out, "→ %-9s %s\n", ev.Step, ev.Message)
}

// PrintLayout outputs where each page window sits on the rendered bitmap.
func (p *Printer) PrintLayout(mapped float64, placements []export.Placement) {
	if len(placements) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Mapped height: %.2fmm\n", mapped))
	sb.WriteString(fmt.Sprintf("Pages:         %d\n\n", len(placements)))
	count := min(len(placements), maxItemsToShow)
	for i := 0; i < count; i++ {
		pl := placements[i]
		sb.WriteString(fmt.Sprintf("Page %d  image offset %.2fmm\n", pl.Page+1, pl.OffsetY))
	}
	if len(placements) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more pages\n", len(placements)-maxItemsToShow))
	}

	p.printBox("PAGE LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExportResult outputs the outcome of a finished export.
func (p *Printer) PrintExportResult(res *export.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", res.FileName))
	sb.WriteString(fmt.Sprintf("Saved to: %s\n", res.Location))
	sb.WriteString(fmt.Sprintf("Bitmap:   %dx%d px\n", res.BitmapWidth, res.BitmapHeight))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", res.Pages))
	sb.WriteString(fmt.Sprintf("Size:     %s", formatBytes(res.Bytes)))

	p.printBox("EXPORT RESULT", sb.String())
}

// PrintValidation outputs the field errors carried by err, or a success box when err is nil.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ DOCUMENT IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	type fieldError struct{ field, message string }
	var fields []fieldError

	var docErr *types.ValidationError
	var schemaErr *schemas.ValidationError
	switch {
	case errors.As(err, &docErr):
		for _, fe := range docErr.Errors {
			fields = append(fields, fieldError{fe.Field, fe.Message})
		}
	case errors.As(err, &schemaErr):
		for _, fe := range schemaErr.Errors {
			fields = append(fields, fieldError{fe.Field, fe.Message})
		}
	default:
		p.printBox("VALIDATION FAILED", err.Error())
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(fields)))
	for i, fe := range fields {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", fe.field))
		sb.WriteString(fmt.Sprintf("  %s\n", fe.message))
		if i < len(fields)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION ERRORS", strings.TrimSuffix(sb.String(), "\n"))
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
