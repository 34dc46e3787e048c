package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Saver persists a finished document and returns where it went.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// DirSaver writes documents into a directory. Files appear atomically: a failed write
// leaves no partial file behind.
type DirSaver struct {
	Dir string
}

func (s DirSaver) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ValidateFileName(name); err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cv-export-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	dest := filepath.Join(dir, name)
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to move document into place: %w", err)
	}
	return dest, nil
}

// MemorySaver keeps documents in memory, keyed by file name. The HTTP server uses it
// to stream the result back to the client.
type MemorySaver struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemorySaver() *MemorySaver {
	return &MemorySaver{files: make(map[string][]byte)}
}

func (s *MemorySaver) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := ValidateFileName(name); err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	return name, nil
}

// Get returns a saved document.
func (s *MemorySaver) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

// Len returns how many documents have been saved.
func (s *MemorySaver) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
