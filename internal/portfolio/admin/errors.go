package admin

import "errors"

var (
	// ErrProjectNotFound is returned when no project has the given id.
	ErrProjectNotFound = errors.New("project not found")

	// ErrSkillNotFound is returned when no skill has the given id.
	ErrSkillNotFound = errors.New("skill not found")

	// ErrSkillIndexOutOfRange is returned by DeleteSkillAt for a bad position.
	ErrSkillIndexOutOfRange = errors.New("skill index out of range")
)

// ValidationError rejects an add before it touches the snapshot. Message is
// meant for the user, Fields lists the failed inputs.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}
