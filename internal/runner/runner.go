// Package runner executes external tools (the site build tool and git) in a
// given working directory and reports their exit status as typed errors.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ExitCodeNotFound mirrors the shell's status for a missing executable.
const ExitCodeNotFound = 127

// Command describes one external invocation.
type Command struct {
	Dir  string
	Name string
	Args []string
}

// String renders the command the way a user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
	// Output runs the command and returns its stdout without trailing newlines.
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExitError reports a command that could not start or exited non-zero.
type ExitError struct {
	Command Command
	Code    int
	Output  string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Code == ExitCodeNotFound {
		return fmt.Sprintf("%s: command not found", e.Command.Name)
	}
	return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	// Capture buffers tool output instead of streaming it. The buffered
	// output is attached to the ExitError when the command fails.
	Capture bool
	Env     []string
}

// NewExecRunner returns a runner streaming to the process stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := r.command(ctx, c)
	var buf bytes.Buffer
	if r.Capture {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	} else {
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	}
	if err := cmd.Run(); err != nil {
		return wrapExit(c, err, buf.String())
	}
	return nil
}

func (r *ExecRunner) Output(ctx context.Context, c Command) (string, error) {
	cmd := r.command(ctx, c)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", wrapExit(c, err, stderr.String())
	}
	// leading spaces are significant in porcelain output
	return strings.TrimRight(string(out), "\r\n"), nil
}

func (r *ExecRunner) command(ctx context.Context, c Command) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

func wrapExit(c Command, err error, output string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// killed by a signal
			code = 1
		}
		return &ExitError{Command: c, Code: code, Output: output, Err: err}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return &ExitError{Command: c, Code: ExitCodeNotFound, Output: output, Err: err}
	}
	return fmt.Errorf("run %s: %w", c.Name, err)
}

// ExitCode extracts the exit status carried by err, or 0 when there is none.
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 0
}
