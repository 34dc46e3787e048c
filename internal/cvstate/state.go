package cvstate

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/types"
)

// State is the whole editing session: the document, which form page is open,
// which template renders the preview and whether an export is outstanding.
type State struct {
	Document  types.CVDocument `json:"document"`
	Step      int              `json:"step"`
	Template  types.Template   `json:"template"`
	Exporting bool             `json:"exporting"`
}

// New returns the initial state: empty document, first step, default template.
func New() State {
	return State{
		Document: types.NewCVDocument(),
		Template: types.DefaultTemplate,
	}
}

// FromDocument starts a session from an existing document.
func FromDocument(doc types.CVDocument) State {
	s := New()
	s.Document = doc.Clone()
	return s
}

// newID is swapped in tests that need deterministic ids.
var newID = func() string { return uuid.NewString() }

// SetPersonalInfo replaces the personal info block.
func SetPersonalInfo(s State, info types.PersonalInfo) State {
	s.Document = s.Document.Clone()
	s.Document.PersonalInfo = info
	return s
}

// UpdatePersonalInfo applies fn to a copy of the personal info block.
func UpdatePersonalInfo(s State, fn func(*types.PersonalInfo)) State {
	s.Document = s.Document.Clone()
	fn(&s.Document.PersonalInfo)
	return s
}

// AddExperience appends a blank experience entry and returns its id.
func AddExperience(s State) (State, string) {
	id := newID()
	s.Document = s.Document.Clone()
	s.Document.Experience = append(s.Document.Experience, types.ExperienceEntry{ID: id})
	return s, id
}

// UpdateExperience applies fn to the entry with the given id. fn cannot change the id.
func UpdateExperience(s State, id string, fn func(*types.ExperienceEntry)) (State, error) {
	doc := s.Document.Clone()
	for i := range doc.Experience {
		if doc.Experience[i].ID == id {
			fn(&doc.Experience[i])
			doc.Experience[i].ID = id
			s.Document = doc
			return s, nil
		}
	}
	return s, ErrEntryNotFound
}

// RemoveExperience deletes the entry with the given id, keeping the order of the rest.
func RemoveExperience(s State, id string) (State, error) {
	doc := s.Document.Clone()
	for i := range doc.Experience {
		if doc.Experience[i].ID == id {
			doc.Experience = append(doc.Experience[:i], doc.Experience[i+1:]...)
			s.Document = doc
			return s, nil
		}
	}
	return s, ErrEntryNotFound
}

// AddEducation appends a blank education entry and returns its id.
func AddEducation(s State) (State, string) {
	id := newID()
	s.Document = s.Document.Clone()
	s.Document.Education = append(s.Document.Education, types.EducationEntry{ID: id})
	return s, id
}

// UpdateEducation applies fn to the entry with the given id. fn cannot change the id.
func UpdateEducation(s State, id string, fn func(*types.EducationEntry)) (State, error) {
	doc := s.Document.Clone()
	for i := range doc.Education {
		if doc.Education[i].ID == id {
			fn(&doc.Education[i])
			doc.Education[i].ID = id
			s.Document = doc
			return s, nil
		}
	}
	return s, ErrEntryNotFound
}

// RemoveEducation deletes the entry with the given id, keeping the order of the rest.
func RemoveEducation(s State, id string) (State, error) {
	doc := s.Document.Clone()
	for i := range doc.Education {
		if doc.Education[i].ID == id {
			doc.Education = append(doc.Education[:i], doc.Education[i+1:]...)
			s.Document = doc
			return s, nil
		}
	}
	return s, ErrEntryNotFound
}

// AddSkill appends a trimmed skill. Blank input and exact duplicates leave the list unchanged;
// the second return value reports whether the skill was added.
func AddSkill(s State, skill string) (State, bool) {
	skill = strings.TrimSpace(skill)
	if skill == "" || s.Document.HasSkill(skill) {
		return s, false
	}
	s.Document = s.Document.Clone()
	s.Document.Skills = append(s.Document.Skills, skill)
	return s, true
}

// RemoveSkill deletes every exact match of skill.
func RemoveSkill(s State, skill string) State {
	doc := s.Document.Clone()
	kept := doc.Skills[:0]
	for _, sk := range doc.Skills {
		if sk != skill {
			kept = append(kept, sk)
		}
	}
	doc.Skills = kept
	s.Document = doc
	return s
}

// SelectTemplate switches the preview variant.
func SelectTemplate(s State, t types.Template) (State, error) {
	if !t.Valid() {
		return s, ErrUnknownTemplate
	}
	s.Template = t
	return s, nil
}

// BeginExport raises the in-progress flag. A second request while the flag is up is
// refused, not queued.
func BeginExport(s State) (State, error) {
	if s.Exporting {
		return s, ErrExportInProgress
	}
	s.Exporting = true
	return s, nil
}

// EndExport lowers the in-progress flag. Callers run it whether the export succeeded or not.
func EndExport(s State) State {
	s.Exporting = false
	return s
}

// FileName returns the export file name for the current document.
func (s State) FileName() string {
	return export.FileName(s.Document.PersonalInfo.FullName)
}
