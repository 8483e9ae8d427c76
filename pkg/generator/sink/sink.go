// Package sink provides output destinations for generated files.
package sink

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
)

// File is one rendered artifact of a service
type File struct {
	// Service is the service the file was rendered for
	Service string
	// Path is slash-separated and relative to the project directory
	Path    string
	Content []byte
	// Append adds Content to an existing file instead of replacing it
	Append bool
}

// OutputSink receives generated file content. Paths are relative; the sink
// determines the actual location.
type OutputSink interface {
	WriteFile(path string, content []byte) error
	AppendFile(path string, content []byte) error
}

// Emit hands f to out, appending or replacing as f requests
func Emit(out OutputSink, f File) error {
	if f.Append {
		return out.AppendFile(f.Path, f.Content)
	}
	return out.WriteFile(f.Path, f.Content)
}

// JoinAppend returns existing followed by content: existing trimmed of
// trailing whitespace, one blank line, content trimmed, one trailing newline.
// Empty existing content yields content alone.
func JoinAppend(existing, content []byte) []byte {
	head := bytes.TrimRight(existing, " \t\r\n")
	tail := bytes.TrimRight(bytes.TrimLeft(content, "\r\n"), " \t\r\n")
	var buf bytes.Buffer
	if len(head) > 0 {
		buf.Write(head)
		buf.WriteString("\n\n")
	}
	buf.Write(tail)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// FilesystemSink writes to a directory on the local filesystem
type FilesystemSink struct {
	// Root is the base directory for all writes
	Root string
	// Mode is the file permission mode (default: 0644)
	Mode os.FileMode
}

// NewFilesystemSink creates a new FilesystemSink writing to the specified root directory
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root, Mode: 0o644}
}

// Resolve returns the absolute location of a relative output path
func (s *FilesystemSink) Resolve(path string) string {
	return filepath.Join(s.Root, filepath.FromSlash(path))
}

// WriteFile replaces the file at path with content in a single write,
// creating parent directories as needed
func (s *FilesystemSink) WriteFile(path string, content []byte) error {
	fullPath, err := s.prepare(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, content, s.mode()); err != nil {
		return &errdefs.FilesystemError{Op: "write", Path: fullPath, Cause: err}
	}
	return nil
}

// AppendFile appends content to the file at path following JoinAppend, or
// creates it when it does not exist yet
func (s *FilesystemSink) AppendFile(path string, content []byte) error {
	fullPath, err := s.prepare(path)
	if err != nil {
		return err
	}
	existing, err := os.ReadFile(fullPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &errdefs.FilesystemError{Op: "read", Path: fullPath, Cause: err}
	}
	if err := os.WriteFile(fullPath, JoinAppend(existing, content), s.mode()); err != nil {
		return &errdefs.FilesystemError{Op: "append", Path: fullPath, Cause: err}
	}
	return nil
}

func (s *FilesystemSink) prepare(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", &errdefs.FilesystemError{Op: "write", Path: path, Cause: err}
	}
	fullPath := s.Resolve(path)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &errdefs.FilesystemError{Op: "create directory", Path: dir, Cause: err}
	}
	return fullPath, nil
}

func (s *FilesystemSink) mode() os.FileMode {
	if s.Mode == 0 {
		return 0o644
	}
	return s.Mode
}

// MemorySink stores generated files in memory
type MemorySink struct {
	files map[string][]byte
}

// NewMemorySink creates a new MemorySink
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile writes content to the in-memory store
func (s *MemorySink) WriteFile(path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	s.files[path] = bytes.Clone(content)
	return nil
}

// AppendFile appends content to the in-memory file following JoinAppend
func (s *MemorySink) AppendFile(path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	s.files[path] = JoinAppend(s.files[path], content)
	return nil
}

// Get returns the content of a single file, or nil if not found
func (s *MemorySink) Get(path string) []byte {
	return bytes.Clone(s.files[path])
}

// Paths returns the stored paths in no particular order
func (s *MemorySink) Paths() []string {
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	return out
}

// ValidatePath checks if a path is valid for output.
// Paths must be relative, use / as separator, not contain .. components
// and be clean.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	if cleaned := filepath.ToSlash(filepath.Clean(path)); cleaned != path {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
