package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/types"
)

// handlePutPersonalInfo replaces the personal info block
func (s *Server) handlePutPersonalInfo(w http.ResponseWriter, r *http.Request) {
	var info types.PersonalInfo
	if err := decodeBody(r, &info, false); err != nil {
		s.fail(w, err)
		return
	}
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.SetPersonalInfo(st, info), nil
	})
}

// handleAddExperience appends an experience entry. Fields in the body prefill it.
func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var body types.ExperienceEntry
	if err := decodeBody(r, &body, true); err != nil {
		s.fail(w, err)
		return
	}
	s.addEntry(w, r, func(st cvstate.State) (cvstate.State, string, error) {
		st, id := cvstate.AddExperience(st)
		st, err := cvstate.UpdateExperience(st, id, func(e *types.ExperienceEntry) { *e = body })
		return st, id, err
	})
}

// handleUpdateExperience replaces an experience entry's fields; its id never changes
func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	var body types.ExperienceEntry
	if err := decodeBody(r, &body, false); err != nil {
		s.fail(w, err)
		return
	}
	entryID := r.PathValue("entry_id")
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.UpdateExperience(st, entryID, func(e *types.ExperienceEntry) { *e = body })
	})
}

// handleDeleteExperience removes an experience entry
func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("entry_id")
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.RemoveExperience(st, entryID)
	})
}

// handleAddEducation appends an education entry. Fields in the body prefill it.
func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	var body types.EducationEntry
	if err := decodeBody(r, &body, true); err != nil {
		s.fail(w, err)
		return
	}
	s.addEntry(w, r, func(st cvstate.State) (cvstate.State, string, error) {
		st, id := cvstate.AddEducation(st)
		st, err := cvstate.UpdateEducation(st, id, func(e *types.EducationEntry) { *e = body })
		return st, id, err
	})
}

// handleUpdateEducation replaces an education entry's fields; its id never changes
func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	var body types.EducationEntry
	if err := decodeBody(r, &body, false); err != nil {
		s.fail(w, err)
		return
	}
	entryID := r.PathValue("entry_id")
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.UpdateEducation(st, entryID, func(e *types.EducationEntry) { *e = body })
	})
}

// handleDeleteEducation removes an education entry
func (s *Server) handleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("entry_id")
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.RemoveEducation(st, entryID)
	})
}

// handleAddSkill adds a skill. Blank and duplicate skills are accepted but change nothing.
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest
	if err := decodeBody(r, &req, false); err != nil {
		s.fail(w, err)
		return
	}
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	added := false
	st, _ := sess.apply(func(st cvstate.State) (cvstate.State, error) {
		var next cvstate.State
		next, added = cvstate.AddSkill(st, req.Skill)
		return next, nil
	})

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, SkillResponse{Added: added, Session: newSessionResponse(sess.id, st)})
}

// handleDeleteSkill removes a skill by exact value
func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	skill := r.PathValue("skill")
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.RemoveSkill(st, skill), nil
	})
}

// handleNextStep moves the form forward, stopping at the last step
func (s *Server) handleNextStep(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.NextStep(st), nil
	})
}

// handlePreviousStep moves the form back, stopping at the first step
func (s *Server) handlePreviousStep(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.PreviousStep(st), nil
	})
}

// handleGoToStep jumps to a step index
func (s *Server) handleGoToStep(w http.ResponseWriter, r *http.Request) {
	var req StepRequest
	if err := decodeBody(r, &req, false); err != nil {
		s.fail(w, err)
		return
	}
	if req.Step == nil {
		s.fail(w, &ErrValidation{Field: "step", Message: "step is required"})
		return
	}
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.GoToStep(st, *req.Step)
	})
}

// handleSelectTemplate switches the layout
func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := decodeBody(r, &req, false); err != nil {
		s.fail(w, err)
		return
	}
	tmpl := types.Template(strings.ToLower(strings.TrimSpace(req.Template)))
	s.respondState(w, r, func(st cvstate.State) (cvstate.State, error) {
		return cvstate.SelectTemplate(st, tmpl)
	})
}

func (s *Server) addEntry(w http.ResponseWriter, r *http.Request, fn func(cvstate.State) (cvstate.State, string, error)) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var id string
	st, err := sess.apply(func(st cvstate.State) (cvstate.State, error) {
		next, newID, err := fn(st)
		id = newID
		return next, err
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, EntryResponse{EntryID: id, Session: newSessionResponse(sess.id, st)})
}
