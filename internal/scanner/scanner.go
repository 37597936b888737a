// Package scanner lists a flat source directory and reads file content for encoding.
package scanner

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrDirectoryAccess is returned when the source directory is missing or unreadable.
	ErrDirectoryAccess = errors.New("directory access")
	// ErrFileRead is returned when an individual entry cannot be read.
	ErrFileRead = errors.New("file read")
)

// FileEntry is one file found by a single non-recursive listing.
type FileEntry struct {
	Path      string // full path to the file
	Name      string // base name
	Extension string // lowercase, without the leading dot
}

// Content holds the bytes of an entry and what was computed from them.
type Content struct {
	Raw      []byte
	Base64   string
	Size     int64
	Hash     string // hex-encoded SHA256
	MIMEType string
}

// NewFileEntry derives base name and extension for name inside dir.
// A leading dot does not start an extension: ".env" has none.
func NewFileEntry(dir, name string) FileEntry {
	base := filepath.Base(name)
	ext := ""
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		ext = strings.ToLower(base[i+1:])
	}
	return FileEntry{
		Path:      filepath.Join(dir, base),
		Name:      base,
		Extension: ext,
	}
}

// ListEntries returns the files in dir in listing order.
// Symlinks are followed; directories and other non-regular entries are skipped,
// as is any name matching one of the exclude patterns (filepath.Match syntax).
// A symlink whose target cannot be resolved is kept so reading it fails the run.
func ListEntries(fsys afero.Fs, dir string, logger *slog.Logger, exclude ...string) ([]FileEntry, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("scanner: read dir %s: %w: %w", dir, ErrDirectoryAccess, err)
	}

	entries := make([]FileEntry, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if excluded(name, exclude) {
			logger.Debug("skipping excluded entry", slog.String("file_name", name))
			continue
		}

		mode := info.Mode()
		if mode&os.ModeSymlink != 0 {
			target, err := fsys.Stat(filepath.Join(dir, name))
			if err != nil {
				logger.Warn("unresolvable symlink", slog.String("file_name", name), slog.String("error", err.Error()))
				entries = append(entries, NewFileEntry(dir, name))
				continue
			}
			mode = target.Mode()
		}

		if !mode.IsRegular() {
			logger.Warn("skipping non-regular entry",
				slog.String("file_name", name),
				slog.String("mode", mode.String()),
			)
			continue
		}
		entries = append(entries, NewFileEntry(dir, name))
	}
	return entries, nil
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Inspect reads the whole file at path and computes its encoding and metadata.
// No size limit is enforced; the file is held in memory.
func Inspect(fsys afero.Fs, path string) (*Content, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scanner: stat %s: %w: %w", path, ErrFileRead, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("scanner: %s: %w: not a regular file", path, ErrFileRead)
	}

	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("scanner: read %s: %w: %w", path, ErrFileRead, err)
	}

	sum := sha256.Sum256(raw)
	return &Content{
		Raw:      raw,
		Base64:   base64.StdEncoding.EncodeToString(raw),
		Size:     int64(len(raw)),
		Hash:     hex.EncodeToString(sum[:]),
		MIMEType: http.DetectContentType(raw),
	}, nil
}

// EncodeContent returns the base64 encoding of the file at path.
func EncodeContent(fsys afero.Fs, path string) (string, error) {
	c, err := Inspect(fsys, path)
	if err != nil {
		return "", err
	}
	return c.Base64, nil
}
