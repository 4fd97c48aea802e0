package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable matches every failure of a remote call: network errors,
	// non-2xx answers and undecodable bodies.
	ErrUnavailable = errors.New("remote unavailable")

	// ErrRejected is returned when the web service answers a push with HTTP 500.
	ErrRejected = errors.New("remote rejected the snapshot")

	// ErrUnauthorized is returned when the admin endpoints require a login.
	ErrUnauthorized = errors.New("remote requires login")

	// ErrEmptyBaseURL is returned by New without a base URL.
	ErrEmptyBaseURL = errors.New("remote base url can not be empty")
)

// Error describes a failed remote call.
type Error struct {
	Op         string // fetch, push or login
	StatusCode int    // 0 when no response was received
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every *Error match ErrUnavailable.
func (e *Error) Is(target error) bool { return target == ErrUnavailable } //nolint:errorlint
