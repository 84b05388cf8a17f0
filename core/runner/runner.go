package runner

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nic-paul/sqlbind/core/logger"
)

// MaxOutputBytes caps how much of each output stream is retained.
const MaxOutputBytes = 1 << 20

// Runner executes external commands. Injected so tests can substitute a
// recording fake.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecError reports a failed external command: nonzero exit, or any
// output on the error stream even when the exit code was zero.
type ExecError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command %q failed: %s", e.Command, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// cappedBuffer retains at most max bytes and silently drops the rest.
type cappedBuffer struct {
	max int
	buf []byte
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if remaining := b.max - len(b.buf); remaining > 0 {
		if len(p) > remaining {
			b.buf = append(b.buf, p[:remaining]...)
		} else {
			b.buf = append(b.buf, p...)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return string(b.buf)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	display := name + " " + strings.Join(args, " ")
	logger.Debug("Running command: %s (dir=%s)", display, dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	stdout := &cappedBuffer{max: MaxOutputBytes}
	stderr := &cappedBuffer{max: MaxOutputBytes}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err != nil {
		return stdout.String(), &ExecError{Command: display, Stderr: stderr.String(), Err: err}
	}
	if stderr.String() != "" {
		return stdout.String(), &ExecError{Command: display, Stderr: stderr.String()}
	}

	return stdout.String(), nil
}
