// Package errdefs defines the error kinds a generation run can fail with.
//
// Every kind has a sentinel usable with errors.Is and a typed error carrying
// enough context (file path, schema name, operation) to diagnose the failure:
//
//	if errors.Is(err, errdefs.ErrInput) {
//		// the document could not be read or decoded
//	}
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrInput indicates the input document is unreadable or malformed.
	ErrInput = errors.New("input error")

	// ErrSchemaShape indicates the document lacks a structurally required key.
	ErrSchemaShape = errors.New("schema shape error")

	// ErrRequiredField indicates a schema's required list holds a non-string entry.
	ErrRequiredField = errors.New("required field error")

	// ErrFilesystem indicates a directory could not be created or a file written.
	ErrFilesystem = errors.New("filesystem error")

	// ErrConfig indicates invalid flags or configuration file contents.
	ErrConfig = errors.New("configuration error")
)

// InputError reports a document that could not be read or decoded.
type InputError struct {
	Path  string
	Cause error
}

func (e *InputError) Error() string {
	msg := "failed to load document"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InputError) Unwrap() error { return e.Cause }

func (e *InputError) Is(target error) bool { return target == ErrInput }

// SchemaShapeError reports a document missing a key the pipeline cannot do without.
type SchemaShapeError struct {
	Path    string
	Message string
}

func (e *SchemaShapeError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *SchemaShapeError) Is(target error) bool { return target == ErrSchemaShape }

// RequiredFieldError reports a non-string entry in a schema's required array.
type RequiredFieldError struct {
	Schema string
	Index  int
	Value  any
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("schema %q: required[%d] is not a string (got %v)", e.Schema, e.Index, e.Value)
}

func (e *RequiredFieldError) Is(target error) bool { return target == ErrRequiredField }

// FilesystemError reports a failed directory creation or file write.
type FilesystemError struct {
	// Op is the attempted operation, e.g. "create directory", "write", "append"
	Op    string
	Path  string
	Cause error
}

func (e *FilesystemError) Error() string {
	msg := fmt.Sprintf("failed to %s %s", e.Op, e.Path)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FilesystemError) Unwrap() error { return e.Cause }

func (e *FilesystemError) Is(target error) bool { return target == ErrFilesystem }

// ConfigError reports an invalid option.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Message
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
