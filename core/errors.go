package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports invalid user or file input.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// IOError reports a storage that could not be opened, read or written.
type IOError struct {
	Op  string
	Err error
}

func NewIOError(op string, err error) error {
	return &IOError{Op: op, Err: err}
}

func (err IOError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err IOError) Cause() error  { return err.Err }
func (err IOError) Unwrap() error { return err.Err }

// IsIOError walks the error chain looking for an IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
