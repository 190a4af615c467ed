package builder

import (
	"errors"
	"fmt"
)

// ErrArtifactMissing means packaging reported success but the expected
// executable is not on disk.
var ErrArtifactMissing = errors.New("packaged executable not found")

// PackagingError is returned when the packaging tool exits nonzero. Code is
// propagated as the process exit status.
type PackagingError struct {
	Code int
	Err  error
}

func (e *PackagingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("packaging failed with exit code %d: %s", e.Code, e.Err)
	}
	return fmt.Sprintf("packaging failed with exit code %d", e.Code)
}

func (e *PackagingError) Unwrap() error { return e.Err }

// StepError reports a failed provisioning or installation command. It is
// only returned in strict mode.
type StepError struct {
	Phase Phase
	Cmd   string
	Code  int
	Err   error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Phase, e.Cmd, e.Err)
	}
	return fmt.Sprintf("%s: %s exited with code %d", e.Phase, e.Cmd, e.Code)
}

func (e *StepError) Unwrap() error { return e.Err }

// ExitCode maps a Run error to the status the process should exit with.
// It is always 1 when the packaging tool gave no usable code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var perr *PackagingError
	// a tool killed by a signal reports -1
	if errors.As(err, &perr) && perr.Code > 0 {
		return perr.Code
	}
	return 1
}
