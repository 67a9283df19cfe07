package probe

import (
	"fmt"
	"time"
)

// LaunchError indicates the probe process could not be started at all:
// the executable or the auth helper is missing, or spawning failed.
// No output was produced; the run aborts.
type LaunchError struct {
	Cmd    string
	Stderr string
	Err    error
}

func (e *LaunchError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("failed to launch probe %q: %v: %s", e.Cmd, e.Err, e.Stderr)
	}
	return fmt.Sprintf("failed to launch probe %q: %v", e.Cmd, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// AuthError indicates the remote endpoint rejected authentication.
// Distinguished from LaunchError so callers can suggest credential
// remediation. The probe's stderr is carried verbatim.
type AuthError struct {
	Host     string
	ExitCode int
	Stderr   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication to %s failed (probe exit %d): %s",
		e.Host, e.ExitCode, e.Stderr)
}

// ExitError indicates the probe terminated with a non-zero status after
// producing partial output. The lines already delivered remain valid;
// the run completes degraded.
type ExitError struct {
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("probe exited with status %d: %s", e.ExitCode, e.Stderr)
}

// TimeoutError indicates the wall-clock timeout expired and the probe
// was terminated. Partial output remains valid.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("probe timed out after %s", e.Timeout)
}

// ReadError indicates the probe's output stream could not be fully
// consumed, for example a line exceeding the scanner limit. The child
// is terminated; lines already delivered remain valid and the run
// completes degraded.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read probe output: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// CanceledError indicates the run was interrupted by the user. Partial
// output remains valid.
type CanceledError struct{}

func (e *CanceledError) Error() string {
	return "probe canceled"
}
