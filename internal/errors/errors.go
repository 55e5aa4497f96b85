package errors

import (
	"errors"
	"fmt"
)

// This package defines a centralized set of sentinel errors for the application.
// Services and the transport return errors that wrap one of these sentinels, so
// callers can use `errors.Is()` to classify a failure without depending on
// transport details. The API layer maps them to HTTP status codes.

var (
	// ErrInvalidParameter signifies that a chat request could not be built
	// because one of its fields is missing or out of range. It is local and
	// never retried.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrTimeout signifies that the transport exceeded its connect or read
	// deadline. Chat requests have no side effects, so a retry is safe.
	ErrTimeout = errors.New("timeout")

	// ErrTransport signifies a connection or HTTP level failure.
	ErrTransport = errors.New("transport error")

	// ErrProtocolViolation signifies a malformed or out-of-order stream
	// fragment, or a stream that closed before its final fragment.
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrRemote signifies a non-2xx response from the inference service.
	ErrRemote = errors.New("remote error")

	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)

// InvalidParameterError names the request field that failed validation.
type InvalidParameterError struct {
	Field string
	Rule  string
	Value any
}

func (e *InvalidParameterError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidParameter, e.Field)
	}
	return fmt.Sprintf("%s: %s failed on the '%s' rule", ErrInvalidParameter, e.Field, e.Rule)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// RemoteError carries the error body returned by the inference service.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no message"
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: status %d (%s): %s", ErrRemote, e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRemote, e.StatusCode, msg)
}

func (e *RemoteError) Unwrap() error { return ErrRemote }
