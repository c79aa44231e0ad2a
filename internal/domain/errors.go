package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTransport       = errors.New("posapi transport failure")
	ErrCircuitOpen     = errors.New("circuit breaker open")
	ErrMalformedReply  = errors.New("malformed response envelope")
	ErrInvalidPayload  = errors.New("invalid bill payload")
	ErrInvalidArgument = errors.New("invalid argument")
)

type (
	DomainError struct {
		Code    string
		Message string
		Cause   error
		Details map[string]any
	}

	// TransportError is a call that could not complete or whose reply could not be decoded.
	// It is never a well-formed success=false reply.
	TransportError struct {
		Endpoint   string
		StatusCode int
		Cause      error
	}
)

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Details: make(map[string]any),
	}
}

func (e *DomainError) WithDetails(key string, value any) *DomainError {
	e.Details[key] = value
	return e
}

func NewInvalidArgumentError(name, reason string) *DomainError {
	return NewDomainError(
		"INVALID_ARGUMENT",
		fmt.Sprintf("invalid %s: %s", name, reason),
		ErrInvalidArgument,
	).WithDetails("argument", name)
}

func NewTransportError(endpoint string, statusCode int, cause error) *TransportError {
	return &TransportError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s (HTTP %d): %v", ErrTransport, e.Endpoint, e.StatusCode, e.Cause)
	}

	return fmt.Sprintf("%s %s: %v", ErrTransport, e.Endpoint, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}
