package server

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/preview"
)

// handleExport renders the session's CV to PDF and returns it as an attachment.
// Only one export per session runs at a time; others get 409 until it finishes.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, release, ok := s.beginExport(w, r)
	if !ok {
		return
	}
	defer release()

	data, res, err := s.runExport(r.Context(), sess.snapshot(), nil)
	if err != nil {
		log.Printf("[EXPORT] Session %s failed: %v", sess.id, err)
		s.errorResponse(w, http.StatusInternalServerError, export.UserMessage)
		return
	}

	if s.verbose {
		log.Printf("[EXPORT] Session %s: %s, %d page(s), %d bytes", sess.id, res.FileName, res.Pages, res.Bytes)
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-CV-Pages", strconv.Itoa(res.Pages))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[EXPORT] Error writing document: %v", err)
	}
}

// handleExportStream runs an export and reports each stage as a server-sent event.
// The last event is either "complete", carrying the document, or "error".
func (s *Server) handleExportStream(w http.ResponseWriter, r *http.Request) {
	sess, release, ok := s.beginExport(w, r)
	if !ok {
		return
	}
	defer release()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	data, res, err := s.runExport(r.Context(), sess.snapshot(), sse.WriteProgress)
	if err != nil {
		log.Printf("[EXPORT] Session %s failed: %v", sess.id, err)
		sse.WriteError(export.UserMessage)
		return
	}
	sse.WriteComplete(ExportComplete{FileName: res.FileName, Pages: res.Pages, Bytes: res.Bytes, PDF: data})
}

// beginExport resolves the session and takes its export slot. On success the caller
// must invoke release once the export is over.
func (s *Server) beginExport(w http.ResponseWriter, r *http.Request) (*session, func(), bool) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return nil, nil, false
	}
	if s.openSurface == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "export is not available on this server")
		return nil, nil, false
	}

	if !sess.gate.TryEnter() {
		s.fail(w, export.ErrBusy)
		return nil, nil, false
	}
	if _, err := sess.apply(cvstate.BeginExport); err != nil {
		sess.gate.Leave()
		s.fail(w, err)
		return nil, nil, false
	}

	release := func() {
		_, _ = sess.apply(func(st cvstate.State) (cvstate.State, error) {
			return cvstate.EndExport(st), nil
		})
		sess.gate.Leave()
	}
	return sess, release, true
}

// runExport renders st, captures it and returns the PDF bytes. onProgress may be nil.
func (s *Server) runExport(ctx context.Context, st cvstate.State, onProgress export.ProgressCallback) ([]byte, *export.Result, error) {
	html, err := preview.Render(&st.Document, st.Template)
	if err != nil {
		return nil, nil, err
	}

	surface, err := s.openSurface(ctx, html)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open preview: %w", err)
	}
	defer surface.Close()

	opts := s.exportOpts
	opts.OnProgress = onProgress
	saver := export.NewMemorySaver()
	res, err := export.New(saver, opts).Export(ctx, surface, st.FileName())
	if err != nil {
		return nil, nil, err
	}
	data, ok := saver.Get(res.FileName)
	if !ok {
		return nil, nil, fmt.Errorf("exported document %s missing", res.FileName)
	}
	return data, res, nil
}
