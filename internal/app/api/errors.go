package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call.
type Kind int

const (
	// KindTransport: the backend could not be reached or the call was cancelled.
	KindTransport Kind = iota + 1

	// KindBackend: the backend answered with a non-2xx status.
	KindBackend

	// KindDecode: the backend answered 2xx with a body that could not be decoded.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBackend:
		return "backend"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// Error is returned by every Conn method on failure.
type Error struct {
	Kind Kind

	// Op is "<METHOD> <path>" of the failed call.
	Op string

	// Status is the HTTP status for KindBackend, 0 otherwise.
	Status int

	// Message is the backend-provided "message" field, possibly empty.
	Message string

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindBackend:
		if e.Message != "" {
			return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Message)
		}
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MessageOr returns the backend-provided message carried by err, or fallback when
// err is not a backend error or the backend gave no message.
func MessageOr(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindBackend && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindBackend {
		return apiErr.Status
	}
	return 0
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}
