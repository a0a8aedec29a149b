// Package keyerr defines the domain error kinds shared across the keymap
// engine. Every package returns one of these instead of panicking on bad
// input; callers classify with errors.Is/errors.As.
package keyerr

import "fmt"

// Code identifies a domain error kind.
type Code int

const (
	// DomainRange means a layer or position index was outside its bound.
	DomainRange Code = iota
	// UnknownBehavior means a name or local ID did not resolve to a registered behavior.
	UnknownBehavior
	// InvalidParameters means the binding validator rejected param1/param2.
	InvalidParameters
	// Unsupported means the operation requires a feature not enabled in this build.
	Unsupported
	// DeviceNotReady means a scan source or behavior device failed a readiness check.
	DeviceNotReady
	// QueueOverflow means a scan event was dropped because the pipeline queue was full.
	QueueOverflow
	// PersistenceIO means the underlying key-value store failed.
	PersistenceIO
)

func (c Code) String() string {
	switch c {
	case DomainRange:
		return "domain_range"
	case UnknownBehavior:
		return "unknown_behavior"
	case InvalidParameters:
		return "invalid_parameters"
	case Unsupported:
		return "unsupported"
	case DeviceNotReady:
		return "device_not_ready"
	case QueueOverflow:
		return "queue_overflow"
	case PersistenceIO:
		return "persistence_io"
	default:
		return "unknown"
	}
}

// Error is the concrete error type carried at domain boundaries.
type Error struct {
	Code    Code
	Message string
	Err     error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, keyerr.DomainRange) style comparisons against a
// bare Code by wrapping it in an Error with no message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New builds an *Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an *Error that records an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Sentinel values usable directly with errors.Is(err, keyerr.ErrDomainRange).
var (
	ErrDomainRange       = &Error{Code: DomainRange}
	ErrUnknownBehavior   = &Error{Code: UnknownBehavior}
	ErrInvalidParameters = &Error{Code: InvalidParameters}
	ErrUnsupported       = &Error{Code: Unsupported}
	ErrDeviceNotReady    = &Error{Code: DeviceNotReady}
	ErrQueueOverflow     = &Error{Code: QueueOverflow}
	ErrPersistenceIO     = &Error{Code: PersistenceIO}
)
