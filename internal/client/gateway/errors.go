package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable      = errors.New("backend unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrRemote           = errors.New("remote call failed")
	ErrUnknownProcedure = errors.New("unknown procedure")
	ErrPrivilegedKey    = errors.New("privileged api key must not be used by a client")
	ErrMalformedKey     = errors.New("malformed api key")
)

// Error describes a failed remote call.
type Error struct {
	Procedure Procedure
	// Status is the HTTP status code, zero when no response was received.
	Status int
	// Message is the human-readable text reported by the backend, if any.
	Message string
	// Err is one of the package sentinels.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Procedure, msg, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Procedure, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the backend-provided message carried by err, or fallback
// when err carries none.
func Message(err error, fallback string) string {
	var ge *Error
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	return fallback
}

// mapStatus picks the sentinel for a non-2xx HTTP status.
func mapStatus(status int) error {
	switch status {
	case 401, 403:
		return ErrUnauthorized
	case 502, 503, 504:
		return ErrUnavailable
	default:
		return ErrRemote
	}
}
