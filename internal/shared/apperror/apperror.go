package apperror

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindAlreadyExists
	KindInvalidState
	KindValidation
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindInvalidState:
		return "invalid_state"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// ============================================================
// ERROR TYPE
// ============================================================

// Error is the application error carried from repositories up to handlers.
// Code identifies the error (e.g. "RECIPE_NOT_FOUND"), errors.Is compares codes.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// WithMessage returns a copy of e with a more specific message.
func (e *Error) WithMessage(format string, args ...any) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// ============================================================
// CONSTRUCTORS
// ============================================================

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func AlreadyExists(code, message string) *Error {
	return New(KindAlreadyExists, code, message)
}

func InvalidState(code, message string) *Error {
	return New(KindInvalidState, code, message)
}

func Forbidden(code, message string) *Error {
	return New(KindForbidden, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(KindUnauthorized, code, message)
}

// Common errors
var (
	ErrUnauthorized = Unauthorized("UNAUTHORIZED", "authentication credentials were not provided")
	ErrForbidden    = Forbidden("FORBIDDEN", "you do not have permission to perform this action")
	ErrValidation   = New(KindValidation, "VALIDATION_FAILED", "validation failed")
	ErrBadRequest   = New(KindValidation, "BAD_REQUEST", "malformed request")
)

// NewValidation converts an ozzo-validation result into a Validation error
// with per-field details. Non-validation errors pass through unchanged.
func NewValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for field, fe := range verrs {
			if fe != nil {
				details[field] = fe.Error()
			}
		}
		e := ErrValidation.Wrap(err)
		e.Details = details
		return e
	}

	var ierr validation.InternalError
	if errors.As(err, &ierr) {
		return err
	}

	return ErrValidation.WithMessage("%s", err.Error()).Wrap(err)
}

// Invalid builds a Validation error for a single field.
func Invalid(field, message string) error {
	e := ErrValidation.WithMessage("%s: %s", field, message)
	e.Details = map[string]string{field: message}
	return e
}

// KindOf returns the Kind of the first *Error in err's chain.
// Errors outside the taxonomy are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
