// Package probe runs the external dry-run synchronization probe (rsync)
// against an ordered pair of endpoints and exposes its itemized output
// as a forward-only line stream.
package probe

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jverlinden/treecompare/internal/platform"
	"github.com/jverlinden/treecompare/pkg/endpoint"
)

const (
	// outFormat makes the probe emit one machine-parseable line per
	// differing entry: itemize flags, relative path, entry length
	outFormat = "--out-format=%i %n %l"

	// scanner limits; probe paths can be long but never pathological
	initialBufSize = 64 * 1024
	maxLineSize    = 1024 * 1024
)

// Invoker launches the comparison probe. Zero value is not usable;
// construct with New.
type Invoker struct {
	// ProbePath is the probe executable, "rsync" by default
	ProbePath string

	// HelperPath is the non-interactive auth helper, "sshpass" by
	// default. Used only when a remote endpoint carries a secret.
	HelperPath string

	// Checksum selects full-content comparison instead of the quick
	// size+mtime check
	Checksum bool

	// Timeout optionally bounds the probe's wall-clock runtime;
	// zero means no timeout
	Timeout time.Duration
}

// New creates an invoker with default probe and helper paths
func New() *Invoker {
	return &Invoker{
		ProbePath:  "rsync",
		HelperPath: "sshpass",
	}
}

// Args builds the probe command line for a source/target pair. The
// probe is always recursive, itemized, and dry-run: it never mutates
// either side.
func (inv *Invoker) Args(source, dest *endpoint.Endpoint) []string {
	args := []string{
		"--archive",
		"--dry-run",
		"--delete",
		"--itemize-changes",
		outFormat,
	}
	if inv.Checksum {
		args = append(args, "--checksum")
	}
	// Trailing slash on the source so contents are compared, not the
	// directory itself nested under the target
	src := source.ProbeArg()
	if source.Kind == endpoint.KindLocal {
		src = platform.EnsureTrailingSlash(src)
	} else {
		src = source.User
		if src != "" {
			src += "@"
		}
		src += source.Host + ":" + platform.EnsureTrailingSlash(source.Path)
	}
	return append(args, src, dest.ProbeArg())
}

// Start launches the probe against the endpoint pair and returns a
// stream of its output lines. The stream is finite and not restartable.
// A LaunchError is returned when the process cannot be spawned.
func (inv *Invoker) Start(ctx context.Context, source, dest *endpoint.Endpoint) (*Stream, error) {
	name := inv.ProbePath
	args := inv.Args(source, dest)

	// Delegate non-interactive authentication to the helper rather
	// than handling credentials here. The secret travels through the
	// environment, never the command line.
	var extraEnv []string
	secret := remoteSecret(source, dest)
	if secret != "" {
		args = append([]string{"-e", name}, args...)
		name = inv.HelperPath
		extraEnv = append(extraEnv, "SSHPASS="+secret)
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if inv.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
	}

	cmd := exec.CommandContext(runCtx, name, args...)
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		if cancel != nil {
			cancel()
		}
		return nil, &LaunchError{Cmd: name, Err: err}
	}

	if err := cmd.Start(); err != nil {
		if cancel != nil {
			cancel()
		}
		return nil, &LaunchError{Cmd: name, Err: err, Stderr: stderr.String()}
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, initialBufSize), maxLineSize)

	return &Stream{
		cmd:     cmd,
		stdout:  stdout,
		scanner: scanner,
		stderr:  &stderr,
		parent:  ctx,
		runCtx:  runCtx,
		cancel:  cancel,
		timeout: inv.Timeout,
		host:    remoteHost(source, dest),
	}, nil
}

// remoteSecret returns the first pre-supplied secret among the two
// endpoints, or empty when authentication is agent/interactive
func remoteSecret(eps ...*endpoint.Endpoint) string {
	for _, ep := range eps {
		if ep.IsRemote() && ep.Secret != "" {
			return ep.Secret
		}
	}
	return ""
}

func remoteHost(eps ...*endpoint.Endpoint) string {
	for _, ep := range eps {
		if ep.IsRemote() {
			return ep.Host
		}
	}
	return ""
}

// Stream is a lazy, forward-only sequence of raw probe output lines.
// It owns the child process; Wait must be called after the last Scan.
type Stream struct {
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	scanner *bufio.Scanner
	stderr  *bytes.Buffer
	parent  context.Context
	runCtx  context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	host    string
	lines   int
}

// Scan advances to the next output line; false at end of stream
func (s *Stream) Scan() bool {
	if !s.scanner.Scan() {
		return false
	}
	s.lines++
	return true
}

// Line returns the current raw line
func (s *Stream) Line() string {
	return s.scanner.Text()
}

// Lines returns the number of lines delivered so far
func (s *Stream) Lines() int {
	return s.lines
}

// Stderr returns everything the probe wrote to its error stream
func (s *Stream) Stderr() string {
	return strings.TrimSpace(s.stderr.String())
}

// Wait reaps the probe process and classifies its outcome:
// nil for a clean exit, TimeoutError when the deadline expired,
// CanceledError on user interrupt, ReadError when the output stream
// could not be fully consumed, AuthError when the remote side
// rejected authentication, ExitError for any other non-zero status.
func (s *Stream) Wait() error {
	scanErr := s.scanner.Err()
	if scanErr != nil {
		// The scan loop stopped mid-stream; the child may be wedged
		// writing the remainder into a pipe nobody reads. Kill it and
		// release the read end so the reap below cannot block.
		if s.cmd.Process != nil {
			s.cmd.Process.Kill()
		}
		s.stdout.Close()
	}

	err := s.cmd.Wait()
	if s.cancel != nil {
		defer s.cancel()
	}

	if s.runCtx.Err() == context.DeadlineExceeded && s.parent.Err() == nil {
		return &TimeoutError{Timeout: s.timeout}
	}
	if s.parent.Err() != nil {
		return &CanceledError{}
	}
	if scanErr != nil {
		return &ReadError{Err: scanErr}
	}

	if err == nil {
		return nil
	}

	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}

	stderr := s.Stderr()
	if s.host != "" && isAuthFailure(stderr) {
		return &AuthError{Host: s.host, ExitCode: code, Stderr: stderr}
	}

	return &ExitError{ExitCode: code, Stderr: stderr}
}

// isAuthFailure matches the transport's credential-rejection messages
func isAuthFailure(stderr string) bool {
	lower := strings.ToLower(stderr)
	for _, marker := range []string{
		"permission denied",
		"authentication failed",
		"host key verification failed",
		"too many authentication failures",
	} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
