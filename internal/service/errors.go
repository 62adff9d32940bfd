package service

import "errors"

var (
	// ErrTaskNotFound is returned when a task id does not resolve.
	ErrTaskNotFound = errors.New("task not found")
	// ErrCommentNotFound is returned when a comment id does not resolve.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrForbidden is returned when the caller neither owns the resource nor is an admin.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports unusable caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}
