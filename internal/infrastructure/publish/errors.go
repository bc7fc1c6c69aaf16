package publish

import (
	"errors"
	"fmt"
)

var (
	// ErrWriteFailed marks failures while producing the temporary file
	ErrWriteFailed = errors.New("write failed")

	// ErrPublishFailed marks failures while moving the temporary file into place
	ErrPublishFailed = errors.New("publish failed")

	// ErrAtomicMoveUnsupported is returned when an atomic move was requested
	// but the filesystem cannot provide one for this pair of paths
	ErrAtomicMoveUnsupported = errors.New("atomic move not supported")
)

// WriteError reports a failure to create, write or flush the temporary file.
// The target path is untouched when this error is returned.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteFailed, e.Err}
}

// Phase names the step of the protocol that failed
func (e *WriteError) Phase() string {
	return "write"
}

// PublishError reports a failure to move the temporary file onto the target
type PublishError struct {
	Op     string
	Source string
	Path   string
	Err    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed: %s %s -> %s: %v", e.Op, e.Source, e.Path, e.Err)
}

func (e *PublishError) Unwrap() []error {
	return []error{ErrPublishFailed, e.Err}
}

// Phase names the step of the protocol that failed
func (e *PublishError) Phase() string {
	return "publish"
}

// PhaseOf returns the failed phase of err, or "" if err did not come from
// this package
func PhaseOf(err error) string {
	var we *WriteError
	if errors.As(err, &we) {
		return we.Phase()
	}
	var pe *PublishError
	if errors.As(err, &pe) {
		return pe.Phase()
	}
	return ""
}
