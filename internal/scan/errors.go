package scan

import (
	"errors"
	"fmt"
)

var (
	// ErrPluginNotFound means the requested script file is absent
	ErrPluginNotFound = errors.New("plugin not found")
	// ErrProcessLaunchFailed means the scanner binary could not be started
	ErrProcessLaunchFailed = errors.New("process launch failed")
	// ErrProcessExitedNonZero is matched by every *ExitError
	ErrProcessExitedNonZero = errors.New("process exited non-zero")
	// ErrScanTimedOut means the configured timeout elapsed before the scan finished
	ErrScanTimedOut = errors.New("scan timed out")
)

// ExitError reports a scan that ran but did not exit cleanly. Partial is only
// filled when partial output is kept.
type ExitError struct {
	Code    int
	Partial []string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("error running scan: return code %d", e.Code)
}

func (e *ExitError) Is(target error) bool {
	return target == ErrProcessExitedNonZero
}
