// Package dcerrors implements the error taxonomy of the engine (see
// spec.md §7): a single typed DomainError carrying one of a closed set of
// codes, enriched with route/connector context, modeled on the teacher's
// internal/domain/pipeline.DomainError.
package dcerrors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a well-known error category.
type ErrorCode string

const (
	// CodeConfiguration covers malformed config and unknown scheme/processor types.
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// CodeValidation covers field constraints and missing required env vars.
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	// CodeConnector covers I/O failure in a source or destination.
	CodeConnector ErrorCode = "CONNECTOR_ERROR"
	// CodeProcessor covers failure within a processor's Process call.
	CodeProcessor ErrorCode = "PROCESSOR_ERROR"
	// CodeTimeout covers a bounded operation that exceeded its deadline.
	CodeTimeout ErrorCode = "TIMEOUT_ERROR"
	// CodeScanner covers config-discovery failure.
	CodeScanner ErrorCode = "SCANNER_ERROR"
	// CodeCancelled marks a cancellation, not a failure (see spec.md §7 propagation policy).
	CodeCancelled ErrorCode = "CANCELLED"
)

// ConnectorKind distinguishes retriable from terminal connector failures.
type ConnectorKind string

const (
	ConnectorTransient ConnectorKind = "transient"
	ConnectorPermanent ConnectorKind = "permanent"
)

// DomainError is the engine's sole error type. Every constructor in this
// package returns one so callers can errors.As against it uniformly.
type DomainError struct {
	Code          ErrorCode
	Route         string
	ConnectorKind ConnectorKind
	Message       string
	Cause         error
	Context       map[string]any
}

func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	prefix := string(e.Code)
	if e.Route != "" {
		prefix = fmt.Sprintf("%s[route=%s]", prefix, e.Route)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is allows errors.Is comparisons against other DomainError values by code.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return e.Code == de.Code
}

// WithRoute returns a copy of the error annotated with a route name.
func (e *DomainError) WithRoute(route string) *DomainError {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Route = route
	return &cp
}

// WithContext merges additional context into a copy of the error.
func (e *DomainError) WithContext(ctx map[string]any) *DomainError {
	if e == nil {
		return nil
	}
	merged := make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	cp := *e
	cp.Context = merged
	return &cp
}

func newErr(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

// Configuration constructs a CodeConfiguration error.
func Configuration(message string, cause error) *DomainError {
	return newErr(CodeConfiguration, message, cause)
}

// Validation constructs a CodeValidation error, optionally naming a field.
func Validation(field, message string) *DomainError {
	err := newErr(CodeValidation, message, nil)
	if field != "" {
		err.Context = map[string]any{"field": field}
	}
	return err
}

// MissingEnvVar constructs a CodeValidation error naming the unset variable.
func MissingEnvVar(name string) *DomainError {
	return newErr(CodeValidation, fmt.Sprintf("required environment variable %q is not set", name), nil).
		WithContext(map[string]any{"variable": name})
}

// Connector constructs a CodeConnector error with the given transient/permanent kind.
func Connector(kind ConnectorKind, message string, cause error) *DomainError {
	err := newErr(CodeConnector, message, cause)
	err.ConnectorKind = kind
	return err
}

// Processor constructs a CodeProcessor error.
func Processor(message string, cause error) *DomainError {
	return newErr(CodeProcessor, message, cause)
}

// Timeout constructs a CodeTimeout error.
func Timeout(message string, cause error) *DomainError {
	return newErr(CodeTimeout, message, cause)
}

// Scanner constructs a CodeScanner error.
func Scanner(message string, cause error) *DomainError {
	return newErr(CodeScanner, message, cause)
}

// Cancelled constructs a CodeCancelled pseudo-error used to signal
// cooperative shutdown; propagation policy (spec.md §7) treats it as
// "not an error" at the top level even though it implements the error interface.
func Cancelled(cause error) *DomainError {
	return newErr(CodeCancelled, "operation cancelled", cause)
}

// As is a small convenience wrapper around errors.As for this package's type.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsTransientConnector reports whether err is a DomainError of kind transient.
func IsTransientConnector(err error) bool {
	de, ok := As(err)
	return ok && de.Code == CodeConnector && de.ConnectorKind == ConnectorTransient
}
