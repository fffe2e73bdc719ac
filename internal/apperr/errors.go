// Package apperr defines the error taxonomy shared across services.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a requested slug or document exists in no origin.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means a slug is already taken in some origin.
	ErrAlreadyExists = errors.New("already exists")
	// ErrMalformed means a source file's metadata block cannot be located
	// or parsed. The file is skipped; the batch continues.
	ErrMalformed = errors.New("malformed content")
	// ErrUnavailable means the document store cannot be reached. Callers
	// degrade to zero/absent values instead of failing.
	ErrUnavailable = errors.New("store unavailable")
	// ErrUnsupported means the operation is disabled in this deployment.
	ErrUnsupported = errors.New("operation not supported")
)

// ErrValidation is the sentinel matched by all validation errors.
var ErrValidation = errors.New("validation failed")

// Validation wraps a payload-validation failure with a caller-visible
// message. The result matches ErrValidation under errors.Is.
func Validation(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }
