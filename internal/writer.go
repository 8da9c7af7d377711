package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const timestampLayout = "20060102_150405"

// Writer writes rendered export documents into the export directory
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer targeting the given directory
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Write stores an export document as <mode>_<timestamp>.html inside
// the export directory, creating the directory when needed. It returns
// the full path of the written file.
func (w *Writer) Write(mode Mode, doc string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", &WriteError{Path: w.dir, Err: err}
	}

	name := fmt.Sprintf("%s_%s.html", SanitizeFilename(string(mode)), w.now().Format(timestampLayout))
	path := filepath.Join(w.dir, name)

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	LogInfo("wrote %d bytes to %s", len(doc), path)
	return path, nil
}

// SanitizeFilename keeps letters, digits, spaces, underscores and
// hyphens, replacing everything else with an underscore
func SanitizeFilename(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ', r == '_', r == '-':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
