package replay

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidScript indicates a script that cannot be run at all.
	ErrInvalidScript = errors.New("invalid script")

	// ErrUnknownOp indicates a step with an unrecognized op.
	ErrUnknownOp = errors.New("unknown op")

	// ErrUnknownTarget indicates a step names an annotation that does not
	// exist in its file.
	ErrUnknownTarget = errors.New("unknown annotation")

	// ErrUnknownFile indicates a step names a file the script did not open.
	ErrUnknownFile = errors.New("unknown file")
)

// StepError reports the step at which a script failed.
type StepError struct {
	Index int // zero-based
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
