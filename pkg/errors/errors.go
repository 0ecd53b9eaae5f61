// Package errors maps domain errors to stable machine-readable application
// codes. HTTP status mapping stays in the API layer; this package only
// classifies.
package errors

import (
	"errors"
	"fmt"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeInfrastructure ErrorCode = "SERVICE_UNAVAILABLE"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
)

// AppError is the wire-facing error shape: a stable code plus a message
// safe to show callers. Internal details stay in Err and are only logged.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError   { return New(CodeNotFound, message) }
func Internal(message string) *AppError   { return New(CodeInternal, message) }

// FromDomainError classifies err by the shared sentinel taxonomy. Unknown
// errors become CodeInternal with a generic message so storage details
// never leak to callers.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		return Wrap(err, CodeForbidden, err.Error())
	case errors.Is(err, shared.ErrInfrastructure):
		return Wrap(err, CodeInfrastructure, "service temporarily unavailable")
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}

func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
