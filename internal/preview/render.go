package preview

import (
	"embed"
	"html/template"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// RegionID is the element id of the rendered CV region inside the HTML document.
// The export pipeline captures this element.
const RegionID = "cv-preview"

// Placeholder texts shown while the header fields are still blank.
const (
	NamePlaceholder  = "Your Name"
	TitlePlaceholder = "Professional Title"
	EmptyStateText   = "Your CV preview will appear here as you fill in the form"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var layouts = mustParseLayouts()

func mustParseLayouts() map[types.Template]*template.Template {
	base := template.Must(template.New("base.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/base.html.tmpl"))

	out := make(map[types.Template]*template.Template, len(types.Templates))
	for _, t := range types.Templates {
		layout := template.Must(base.Clone())
		template.Must(layout.ParseFS(templateFS, "templates/"+string(t)+".html.tmpl"))
		out[t] = layout
	}
	return out
}

type experienceView struct {
	Position    string
	Company     string
	Dates       string
	Description string
}

type educationView struct {
	Heading string
	School  string
	GPA     string
	Dates   string
}

type pageView struct {
	RegionID   string
	Variant    string
	Name       string
	Title      string
	Email      string
	Phone      string
	Location   string
	Summary    string
	Experience []experienceView
	Education  []educationView
	Skills     []string
	Empty      bool
	EmptyText  string
}

func buildView(doc *types.CVDocument, t types.Template) pageView {
	info := doc.PersonalInfo
	v := pageView{
		RegionID:  RegionID,
		Variant:   string(t),
		Name:      orDefault(info.FullName, NamePlaceholder),
		Title:     orDefault(info.Title, TitlePlaceholder),
		Email:     info.Email,
		Phone:     info.Phone,
		Location:  info.Location,
		Summary:   info.Summary,
		Skills:    doc.Skills,
		Empty:     doc.IsEmpty(),
		EmptyText: EmptyStateText,
	}

	for _, exp := range doc.Experience {
		v.Experience = append(v.Experience, experienceView{
			Position:    exp.Position,
			Company:     exp.Company,
			Dates:       DateRange(exp.StartDate, exp.EndDate, exp.Current),
			Description: exp.Description,
		})
	}
	for _, edu := range doc.Education {
		v.Education = append(v.Education, educationView{
			Heading: edu.Degree + " in " + edu.Field,
			School:  edu.School,
			GPA:     edu.GPA,
			Dates:   DateRange(edu.StartDate, edu.EndDate, false),
		})
	}
	return v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Render produces a standalone HTML document for doc laid out with template t.
// The CV itself lives in the element with id RegionID. Unknown templates fall back
// to the classic layout.
func Render(doc *types.CVDocument, t types.Template) (string, error) {
	if !t.Valid() {
		t = types.DefaultTemplate
	}
	var sb strings.Builder
	if err := layouts[t].Execute(&sb, buildView(doc, t)); err != nil {
		return "", &RenderError{Template: string(t), Cause: err}
	}
	return sb.String(), nil
}

// Templates returns the selector catalog in display order.
func Templates() []types.TemplateInfo {
	out := make([]types.TemplateInfo, 0, len(types.Templates))
	for _, t := range types.Templates {
		out = append(out, t.Info())
	}
	return out
}
