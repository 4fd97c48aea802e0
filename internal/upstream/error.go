package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotInitialized is returned when the upstream client is not initialized.
	ErrClientNotInitialized = errors.New("upstream client not initialized")

	// ErrEmptyURL is returned by Open without an upstream URL.
	ErrEmptyURL = errors.New("upstream url can not be empty")

	// ErrUnavailable wraps every failed call to the store backend.
	ErrUnavailable = errors.New("upstream unavailable")
)

// RejectedError is a 4xx answer of the store backend carrying its error message.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("upstream rejected request with status %d: %s", e.StatusCode, e.Message)
}
