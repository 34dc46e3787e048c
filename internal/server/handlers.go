package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/types"
)

const maxBodyBytes = 1 << 20

// CreateSessionRequest is the optional body of POST /sessions
type CreateSessionRequest struct {
	Document *types.CVDocument `json:"document,omitempty"`
	Template string            `json:"template,omitempty"`
}

// SessionResponse describes a session and its current state
type SessionResponse struct {
	ID          string        `json:"id"`
	State       cvstate.State `json:"state"`
	CurrentStep cvstate.Step  `json:"current_step"`
	IsLastStep  bool          `json:"is_last_step"`
	FileName    string        `json:"file_name"`
}

// EntryResponse is returned when a list entry is created
type EntryResponse struct {
	EntryID string          `json:"entry_id"`
	Session SessionResponse `json:"session"`
}

// SkillRequest is the body of POST /sessions/{id}/skills
type SkillRequest struct {
	Skill string `json:"skill"`
}

// SkillResponse reports whether a skill was added
type SkillResponse struct {
	Added   bool            `json:"added"`
	Session SessionResponse `json:"session"`
}

// StepRequest is the body of PUT /sessions/{id}/step
type StepRequest struct {
	Step *int `json:"step"`
}

// TemplateRequest is the body of PUT /sessions/{id}/template
type TemplateRequest struct {
	Template string `json:"template"`
}

func newSessionResponse(id string, st cvstate.State) SessionResponse {
	return SessionResponse{
		ID:          id,
		State:       st,
		CurrentStep: st.CurrentStep(),
		IsLastStep:  st.IsLastStep(),
		FileName:    st.FileName(),
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTemplates lists the available layouts
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, preview.Templates())
}

// handleCreateSession starts an editing session, optionally seeded with a document
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeBody(r, &req, true); err != nil {
		s.fail(w, err)
		return
	}

	st := cvstate.New()
	if req.Document != nil {
		if err := req.Document.Validate(); err != nil {
			s.fail(w, err)
			return
		}
		st = cvstate.FromDocument(*req.Document)
	}
	if req.Template != "" {
		tmpl, err := types.ParseTemplate(req.Template)
		if err != nil {
			s.fail(w, &ErrValidation{Field: "template", Message: err.Error()})
			return
		}
		st.Template = tmpl
	}

	sess := s.sessions.create(st)
	if s.verbose {
		log.Printf("[sessions] Created %s", sess.id)
	}
	s.jsonResponse(w, http.StatusCreated, newSessionResponse(sess.id, st))
}

// handleGetSession returns the session state
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionResponse(sess.id, sess.snapshot()))
}

// handleDeleteSession drops a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.delete(id) {
		s.fail(w, &ErrSessionNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePreview renders the CV as a standalone HTML page
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	st := sess.snapshot()
	tmpl := st.Template
	if q := r.URL.Query().Get("template"); q != "" {
		parsed, err := types.ParseTemplate(q)
		if err != nil {
			s.fail(w, &ErrValidation{Field: "template", Message: err.Error()})
			return
		}
		tmpl = parsed
	}

	html, err := preview.Render(&st.Document, tmpl)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, html); err != nil {
		log.Printf("Error writing preview: %v", err)
	}
}

// lookup resolves the {id} path value, writing a 404 when it is unknown
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := r.PathValue("id")
	sess, ok := s.sessions.get(id)
	if !ok {
		s.fail(w, &ErrSessionNotFound{ID: id})
		return nil, false
	}
	return sess, true
}

// respondState applies fn to the session and writes the resulting state
func (s *Server) respondState(w http.ResponseWriter, r *http.Request, fn func(cvstate.State) (cvstate.State, error)) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	st, err := sess.apply(fn)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionResponse(sess.id, st))
}

// fail maps err to a status code and writes it. Internal errors are logged, not exposed.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)

	var docInvalid *types.ValidationError
	if errors.As(err, &docInvalid) {
		s.jsonResponse(w, status, map[string]any{
			"error":  "invalid document",
			"fields": docInvalid.Errors,
		})
		return
	}
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// decodeBody decodes a JSON request body. An empty body is accepted only when optional is set.
func decodeBody(r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) && optional {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is required"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}
