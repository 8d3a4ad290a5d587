package opensky

import (
	"errors"
	"fmt"
)

// Kind represents stable error codes for all failure modes
type Kind string

const (
	// InvalidArgument indicates caller-supplied parameters failed
	// validation; reported before any network call is made
	InvalidArgument Kind = "INVALID_ARGUMENT"
	// NetworkError indicates a timeout or transport failure talking to
	// the OpenSky API
	NetworkError Kind = "NETWORK_ERROR"
	// DataFormatError indicates the upstream payload does not match the
	// documented OpenSky schema
	DataFormatError Kind = "DATA_FORMAT_ERROR"
)

// Error represents an OpenSky operation failure with a stable kind,
// a human-readable message, and an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// NewInvalidArgument creates an InvalidArgument error
func NewInvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: InvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NewNetworkError creates a NetworkError wrapping the given cause
func NewNetworkError(cause error, format string, args ...any) *Error {
	return &Error{Kind: NetworkError, Message: fmt.Sprintf(format, args...), cause: cause}
}

// NewDataFormatError creates a DataFormatError wrapping the given cause
func NewDataFormatError(cause error, format string, args ...any) *Error {
	return &Error{Kind: DataFormatError, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf returns the Kind carried by err, or the empty string if err is
// not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
