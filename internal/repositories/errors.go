package repositories

import "errors"

// Error kinds. Match with errors.Is or the Is* helpers.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// RecordError is a failed record operation with a human-readable message
type RecordError struct {
	Kind    error
	Message string
}

func (e *RecordError) Error() string { return e.Message }

func (e *RecordError) Unwrap() error { return e.Kind }

func NotFound(message string) error {
	return &RecordError{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) error {
	return &RecordError{Kind: ErrConflict, Message: message}
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// Messages surfaced to callers
const (
	MsgUserNotFound          = "User not found"
	MsgCourseNotFound        = "Course not found"
	MsgUserOrCourseNotFound  = "User or Course not found"
	MsgNotEnrolled           = "Not enrolled in this course"
	MsgAlreadyEnrolled       = "Already enrolled"
	MsgUsernameAlreadyExists = "Username already exists"
)
