// Package output writes outline results to disk and renders batch summaries.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
)

// Encode renders o the way result files are written: four-space indent,
// non-ASCII and HTML characters left unescaped, trailing newline.
func Encode(o outline.Outline) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("encode outline: %w", err)
	}
	return buf.Bytes(), nil
}

// ResultPath maps an input file to <dir>/<stem>.json.
func ResultPath(dir, input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+".json")
}

// Writer stores one JSON file per processed document.
type Writer struct {
	dir    string
	schema *Schema
}

// NewWriter creates dir if needed. A nil schema skips validation.
func NewWriter(dir string, schema *Schema) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{dir: dir, schema: schema}, nil
}

// Write validates o and writes it next to the other results, returning the
// path written. The file is renamed into place so readers never see a
// partial result.
func (w *Writer) Write(input string, o outline.Outline) (string, error) {
	data, err := Encode(o)
	if err != nil {
		return "", err
	}
	if w.schema != nil {
		if err := w.schema.ValidateJSON(data); err != nil {
			return "", err
		}
	}

	path := ResultPath(w.dir, input)
	tmp, err := os.CreateTemp(w.dir, ".outline-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
