package portfolio

import "errors"

var (
	// ErrNotSequence is returned when a projects or skills value is not a JSON array.
	ErrNotSequence = errors.New("value is not a sequence")

	// ErrNotObject is returned when a snapshot or record is not a JSON object.
	ErrNotObject = errors.New("value is not an object")

	// ErrInvalidDocument is returned when an imported document cannot be parsed.
	ErrInvalidDocument = errors.New("invalid portfolio document")
)
