package types

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure of the pipeline matches exactly one of these
// through errors.Is.
var (
	// ErrFileAccess: the input path is missing or unreadable.
	ErrFileAccess = errors.New("file access error")

	// ErrSchema: a required column is absent.
	ErrSchema = errors.New("schema error")

	// ErrFormat: the input has no parseable header row or an unsupported layout.
	ErrFormat = errors.New("format error")

	// ErrWrite: the output file cannot be created or saved.
	ErrWrite = errors.New("write error")
)

// Error is a classified pipeline failure.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Path is the file involved, if any.
	Path string

	// Err is the underlying cause. May be nil.
	Err error
}

// NewError classifies err under kind for the given path.
func NewError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Errorf classifies a formatted message under kind for the given path.
func Errorf(kind error, path, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Path: path, Err: fmt.Errorf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
