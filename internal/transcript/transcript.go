// Package transcript persists the raw response payload of completion
// calls to timestamped files for offline inspection. There is no read
// path; the files are not a log or an index.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Writer writes one file per recorded completion into a directory.
// File names carry the write time and a per-writer session ID so
// parallel sessions never collide.
type Writer struct {
	dir     string
	session string
	now     func() time.Time
}

// NewWriter creates a Writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create transcript dir: %w", err)
	}
	return &Writer{
		dir:     dir,
		session: uuid.NewString()[:8],
		now:     time.Now,
	}, nil
}

// Write stores one raw response payload and returns the file path.
func (w *Writer) Write(raw json.RawMessage) (string, error) {
	name := fmt.Sprintf("%s-%s.json", w.now().Format("20060102-150405"), w.session)
	path := filepath.Join(w.dir, name)

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
