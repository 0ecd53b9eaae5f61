/*
Package shared holds the domain-layer building blocks common to every
aggregate: the error taxonomy, money, pagination.

Error design:
 1. Sentinel errors classify every failure reaching a caller; adapters and
    services never surface anything outside this taxonomy.
 2. DomainError captures the stack at creation but formats it lazily.
 3. Domain errors carry no transport concepts (HTTP codes live in the API
    layer).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors. Use errors.Is to classify.
var (
	// ErrNotFound - the aggregate does not exist or is soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrConflict - a uniqueness or referential constraint was violated,
	// including optimistic-lock version mismatches.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput - a business invariant failed before any write.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized - the caller lacks rights over the aggregate.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInfrastructure - connection loss, pool exhaustion, timeout. The
	// only category callers may safely retry.
	ErrInfrastructure = errors.New("infrastructure failure")
)

// DomainError carries business context and the stack of its creation point.
type DomainError struct {
	// Err is the underlying sentinel, for errors.Is.
	Err error

	// Entity names the aggregate involved ("account", "card", ...).
	Entity string

	// Message is the human-readable description. Never contains storage
	// details (table names, SQL state codes).
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	// Transient marks infrastructure errors worth retrying (deadlock,
	// lock timeout, lost connection).
	Transient bool

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames on demand.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack records the current call stack. skip is usually 3
// (Callers, CaptureStack, the constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders frames, filtering runtime internals, at most 10.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

func NewAuthorizationError(entity, reason string) error {
	return &DomainError{
		Err:     ErrUnauthorized,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewInfrastructureError wraps a transport-level failure. transient controls
// whether the retry layer may re-run the operation.
func NewInfrastructureError(entity, message string, transient bool) error {
	return &DomainError{
		Err:       ErrInfrastructure,
		Entity:    entity,
		Message:   message,
		Transient: transient,
		stack:     CaptureStack(3),
	}
}

// IsTransient reports whether err is an infrastructure error marked safe to
// retry.
func IsTransient(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return errors.Is(de.Err, ErrInfrastructure) && de.Transient
	}
	return false
}

// Stacker is implemented by errors that carry a creation-point stack.
type Stacker interface {
	Stack() []string
}
