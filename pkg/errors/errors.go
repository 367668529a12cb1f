// Package errors provides structured error handling for hidpi bindings.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindValidation indicates a negative or zero size where a positive one is required.
	KindValidation
	// KindEnvironment indicates a missing host service, such as a window for an element.
	KindEnvironment
	// KindState indicates an operation on a disposed binding.
	KindState
	// KindUnsupportedTarget indicates an unrecognized binding target kind.
	KindUnsupportedTarget
	// KindProbe indicates a capability probe failure. These are reported, never returned.
	KindProbe
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindEnvironment:
		return "environment"
	case KindState:
		return "state"
	case KindUnsupportedTarget:
		return "unsupported-target"
	case KindProbe:
		return "probe"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel causes wrapped by *Error.
var (
	ErrNegativeSize      = errors.New("negative size is not allowed")
	ErrEmptySize         = errors.New("size must have positive width and height")
	ErrNilElement        = errors.New("element is nil")
	ErrNoWindow          = errors.New("no window is associated with the element")
	ErrNoContext         = errors.New("drawing context is unavailable")
	ErrDisposed          = errors.New("binding is disposed")
	ErrUnsupportedTarget = errors.New("unsupported binding target")
)

// Error is the structured error returned by hidpi packages.
type Error struct {
	// Op is the operation that failed (e.g., "binding.ApplySuggestedBitmapSize").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack for reported errors, if captured.
	StackTrace string
	// Timestamp is when the error was reported.
	Timestamp time.Time
}

// New returns an *Error for op wrapping err.
func New(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Newf is like New but formats the cause.
func Newf(op string, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// Is is errors.Is, re-exported so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As, re-exported so callers need a single import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "binding.onResize").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors that cannot be returned to a caller, such as
// failures inside host callbacks.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
