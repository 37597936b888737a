// Package output serializes a dataset and writes it to disk in one step.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mtiwari1/docseed/internal/dataset"
)

const (
	FormatJS   = "js"
	FormatJSON = "json"

	// DefaultName is the binding name and file stem of the artifact.
	DefaultName = "documentData"
)

var (
	// ErrFileWrite is returned when the artifact cannot be written.
	ErrFileWrite = errors.New("file write")
	// ErrUnknownFormat is returned by NewWriter for an unsupported format.
	ErrUnknownFormat = errors.New("unknown output format")
)

// Writer encodes a record sequence into the bytes of one artifact.
type Writer interface {
	Encode(records []dataset.DocumentRecord) ([]byte, error)
	Extension() string
}

// JSExport wraps the JSON array in a named module export:
//
//	export const documentData = [ ... ];
type JSExport struct {
	Keyword string // e.g. "export const"
	Name    string
}

// Encode implements Writer.
func (w JSExport) Encode(records []dataset.DocumentRecord) ([]byte, error) {
	body, err := encodeArray(records)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s = ", w.Keyword, w.Name)
	buf.Write(body)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// Extension implements Writer.
func (JSExport) Extension() string { return FormatJS }

// JSON writes the bare array.
type JSON struct{}

// Encode implements Writer.
func (JSON) Encode(records []dataset.DocumentRecord) ([]byte, error) {
	body, err := encodeArray(records)
	if err != nil {
		return nil, err
	}
	return append(body, '\n'), nil
}

// Extension implements Writer.
func (JSON) Extension() string { return FormatJSON }

// NewWriter returns the Writer for format. name is the export binding for js.
func NewWriter(format, name string) (Writer, error) {
	switch format {
	case FormatJS:
		return JSExport{Keyword: "export const", Name: name}, nil
	case FormatJSON:
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("output: %w: %q", ErrUnknownFormat, format)
	}
}

// OutputPath returns <dir>/<name>.<ext> for w.
func OutputPath(dir, name string, w Writer) string {
	return filepath.Join(dir, name+"."+w.Extension())
}

// ExcludePatterns returns the filepath.Match patterns covering every artifact
// name writes into the source directory, including leftover temp files.
func ExcludePatterns(name string) []string {
	var patterns []string
	for _, ext := range []string{FormatJS, FormatJSON} {
		file := name + "." + ext
		patterns = append(patterns, file, tempPattern(file))
	}
	return patterns
}

func tempPattern(file string) string {
	return "." + file + ".*.tmp"
}

// WriteDataset encodes records and replaces the file at path with the result.
// The content goes to a temp file in the same directory first, so a failed
// run never leaves a truncated artifact behind.
func WriteDataset(fsys afero.Fs, records []dataset.DocumentRecord, path string, w Writer) error {
	data, err := w.Encode(records)
	if err != nil {
		return fmt.Errorf("output: encode: %w", err)
	}

	tmp, err := afero.TempFile(fsys, filepath.Dir(path), tempPattern(filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("output: create temp for %s: %w: %w", path, ErrFileWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("output: write %s: %w: %w", path, ErrFileWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("output: finalize %s: %w: %w", path, ErrFileWrite, err)
	}
	if err := fsys.Chmod(tmpName, 0o644); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("output: chmod %s: %w: %w", path, ErrFileWrite, err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("output: rename to %s: %w: %w", path, ErrFileWrite, err)
	}
	return nil
}

// encodeArray marshals records as an indented JSON array; nil becomes [].
func encodeArray(records []dataset.DocumentRecord) ([]byte, error) {
	if records == nil {
		records = []dataset.DocumentRecord{}
	}
	return json.MarshalIndent(records, "", "  ")
}
