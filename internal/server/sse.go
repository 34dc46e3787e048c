package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/export"
)

// ExportComplete is the final event of a streamed export. PDF is base64 encoded by encoding/json.
type ExportComplete struct {
	FileName string `json:"file_name"`
	Pages    int    `json:"pages"`
	Bytes    int    `json:"bytes"`
	PDF      []byte `json:"pdf"`
}

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteProgress forwards one exporter progress event
func (s *SSEWriter) WriteProgress(ev export.ProgressEvent) {
	s.WriteEvent("progress", ev) //nolint:errcheck
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends the finished document
func (s *SSEWriter) WriteComplete(done ExportComplete) {
	s.WriteEvent("complete", done) //nolint:errcheck
}
