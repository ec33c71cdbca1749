// Package probe runs external commands on behalf of the metric resolvers.
//
// A probe never panics and never returns a partially decoded result: it
// either yields the command's stdout as valid UTF-8 text or a *Failure
// describing why no data is available.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"
)

// Failure kinds. Match them with errors.Is against a returned error.
var (
	// ErrNotFound means the executable is not installed or not on PATH.
	ErrNotFound = errors.New("executable not found")
	// ErrNonZeroExit means the command ran but reported failure.
	ErrNonZeroExit = errors.New("non-zero exit status")
	// ErrTimeout means the command did not finish within the probe timeout.
	ErrTimeout = errors.New("probe timed out")
	// ErrExhausted means the process could not be spawned for lack of
	// system resources. It is the only failure callers treat as fatal.
	ErrExhausted = errors.New("cannot spawn process")
	// ErrFailed covers every other I/O or start error.
	ErrFailed = errors.New("probe failed")
)

// DefaultTimeout bounds a single probe when the runner has no timeout set.
const DefaultTimeout = 5 * time.Second

// Runner executes a command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Failure is the error returned for every unsuccessful probe.
type Failure struct {
	Command  string
	Kind     error
	ExitCode int
	Err      error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s: %v", f.Command, f.Kind)
	if f.Kind == ErrNonZeroExit {
		msg = fmt.Sprintf("%s (code %d)", msg, f.ExitCode)
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Err}
}

// ExecRunner runs real child processes.
type ExecRunner struct {
	// Timeout bounds each invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// NewExecRunner returns an ExecRunner with the given per-probe timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run executes name with args. Stdout is the only data channel; stderr is
// kept solely to enrich the failure message.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	command := CommandLine(name, args...)

	path, err := exec.LookPath(name)
	if err != nil {
		return "", &Failure{Command: command, Kind: ErrNotFound, Err: err}
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Children that inherit the pipes must not keep Run blocked past the deadline.
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		return "", classify(ctx, command, err, stderr.String())
	}

	return Decode(stdout.Bytes()), nil
}

func classify(ctx context.Context, command string, err error, stderr string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Failure{Command: command, Kind: ErrTimeout, Err: err}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		f := &Failure{Command: command, Kind: ErrNonZeroExit, ExitCode: exitErr.ExitCode()}
		if msg := firstLine(stderr); msg != "" {
			f.Err = errors.New(msg)
		}
		return f
	}

	if errors.Is(err, exec.ErrNotFound) {
		return &Failure{Command: command, Kind: ErrNotFound, Err: err}
	}
	if isExhausted(err) {
		return &Failure{Command: command, Kind: ErrExhausted, Err: err}
	}
	return &Failure{Command: command, Kind: ErrFailed, Err: err}
}

func isExhausted(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.ENOMEM) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}

// Decode converts raw command output to text instead of failing on invalid
// UTF-8. Each invalid byte becomes its own U+FFFD.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var b strings.Builder
	b.Grow(len(raw) + 8)
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.Write(raw[:size])
		}
		raw = raw[size:]
	}
	return b.String()
}

// CommandLine joins a command and its arguments with single spaces.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
