package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced clinic or entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means the input was malformed, e.g. a flag
	// name outside the closed capability set.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict means a concurrent writer changed the flag between
	// the read and the conditional write.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable means a required collaborator (store or count
	// query) could not be reached. Audit-write failures are never
	// wrapped in this; they are swallowed by the recorder.
	ErrUnavailable = errors.New("unavailable")
)

// PreconditionError blocks a requested flag transition with a reason the
// front-end can show verbatim. Count carries the offending live count
// where one applies, e.g. active internments.
type PreconditionError struct {
	Reason string
	Count  int
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// Preconditionf builds a PreconditionError with a formatted reason.
func Preconditionf(format string, args ...any) *PreconditionError {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}
