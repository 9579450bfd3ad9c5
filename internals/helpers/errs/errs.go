// Package errs carries the typed domain failures surfaced by the workflow
// services so controllers can branch on kind instead of string-matching.
package errs

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeNotFound          Code = "NOT_FOUND"
	CodeDuplicateEntity   Code = "DUPLICATE_ENTITY"
	CodeIllegalTransition Code = "ILLEGAL_TRANSITION"
	CodeInvalidState      Code = "INVALID_STATE"
	CodeValidation        Code = "VALIDATION_ERROR"

	// CodeDependencyFailure is for the best-effort side channels (email,
	// in-app notification). It is logged where it happens and must never be
	// returned to the caller of a state transition.
	CodeDependencyFailure Code = "DEPENDENCY_FAILURE"

	// CodeInternal covers storage and other unexpected failures, kept apart
	// from the domain taxonomy above.
	CodeInternal Code = "INTERNAL_ERROR"
)

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func Unauthorized(message string) *Error      { return New(CodeUnauthorized, message) }
func NotFound(message string) *Error          { return New(CodeNotFound, message) }
func DuplicateEntity(message string) *Error   { return New(CodeDuplicateEntity, message) }
func IllegalTransition(message string) *Error { return New(CodeIllegalTransition, message) }
func InvalidState(message string) *Error      { return New(CodeInvalidState, message) }
func Validation(message string) *Error        { return New(CodeValidation, message) }
func Internal(err error) *Error               { return Wrap(CodeInternal, "internal error", err) }

// CodeOf extracts the domain code from any error in the chain, INTERNAL when
// the error is not a domain failure.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given domain code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
