package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork is returned when the catalog could not be reached
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned for 401/403 responses
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRequest is returned for 400/422 responses
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned for 404 responses
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for 409 responses
	ErrConflict = errors.New("conflict")

	// ErrServer is returned for 5xx and otherwise unexpected responses
	ErrServer = errors.New("server error")

	// ErrMalformedResponse is returned when a 2xx body cannot be decoded
	ErrMalformedResponse = errors.New("malformed response")
)

// RemoteError describes a failed catalog call. It unwraps to one of the
// sentinel errors above so callers can branch with errors.Is.
type RemoteError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog %s: %v (status %d): %s", e.Op, e.Err, e.Status, e.Message)
	}
	return fmt.Sprintf("catalog %s: %v: %s", e.Op, e.Err, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func sentinelForStatus(status int) error {
	switch {
	case status == 400 || status == 422:
		return ErrInvalidRequest
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status == 404:
		return ErrNotFound
	case status == 409:
		return ErrConflict
	default:
		return ErrServer
	}
}
