// Package errors gives sunburst failures a machine-readable [Code].
//
// The CLI, the HTTP surface and tests branch on the code instead of the
// message. Codes fall into a handful of classes (see [Code.Class]) that
// decide, for example, the HTTP status of a failed request:
//
//	err := errors.New(errors.ErrCodeInvalidTree, "total weight must be positive, got %g", w)
//	if errors.Is(err, errors.ErrCodeInvalidTree) {
//	    // reject the dataset
//	}
//
// Errors from other packages keep their identity when wrapped:
//
//	errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code names one kind of failure.
type Code string

// Input the caller can fix.
const (
	ErrCodeInvalidTree   Code = "INVALID_TREE"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSize   Code = "INVALID_SIZE"
	ErrCodeInvalidEasing Code = "INVALID_EASING"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
)

// References to things that do not exist.
const (
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeNodeNotFound    Code = "NODE_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
)

// Everything else.
const (
	// ErrCodeNotClickable is a zoom the chart refused in its current state.
	ErrCodeNotClickable Code = "NOT_CLICKABLE"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Class groups codes by how a caller should react.
type Class int

const (
	ClassInternal    Class = iota // a bug or an environment failure
	ClassInvalid                  // bad input
	ClassNotFound                 // unknown node, session or file
	ClassConflict                 // valid request, wrong state
	ClassUnsupported              // valid request, not implemented for this input
)

var classes = map[Code]Class{
	ErrCodeInvalidTree:     ClassInvalid,
	ErrCodeInvalidInput:    ClassInvalid,
	ErrCodeInvalidFormat:   ClassInvalid,
	ErrCodeInvalidSize:     ClassInvalid,
	ErrCodeInvalidEasing:   ClassInvalid,
	ErrCodeInvalidPath:     ClassInvalid,
	ErrCodeNotFound:        ClassNotFound,
	ErrCodeNodeNotFound:    ClassNotFound,
	ErrCodeFileNotFound:    ClassNotFound,
	ErrCodeSessionNotFound: ClassNotFound,
	ErrCodeNotClickable:    ClassConflict,
	ErrCodeUnsupported:     ClassUnsupported,
}

// Class returns the class of c. Unknown codes are internal.
func (c Code) Class() Class { return classes[c] }

// Error is a failure with a code, a message for the user and an optional
// cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message caused by cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// CodeOf returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Message returns the user-facing message of err: the outermost *Error's
// message without code or cause, or err.Error() for other errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
