package config

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error matches exactly one of them with errors.Is.
var (
	ErrParse           = errors.New("config: malformed document")
	ErrMissing         = errors.New("config: document missing or empty")
	ErrVersionMismatch = errors.New("config: version mismatch")
	ErrSchemaInvalid   = errors.New("config: schema invalid")
)

// Error reports why a config document was rejected.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v (%s)", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v (%s): %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Recoverable reports whether err is a rejected document that the reset
// flow can replace.
func Recoverable(err error) bool {
	var cfgErr *Error
	return errors.As(err, &cfgErr)
}
