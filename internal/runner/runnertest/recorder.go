// Package runnertest provides a recording runner.Runner for workflow tests.
package runnertest

import (
	"context"
	"strings"
	"sync"

	"github.com/Johannes-Berggren/publish/internal/runner"
)

// Recorder records every command it is asked to run. Commands matching a
// registered failure return a runner.ExitError with the configured code.
type Recorder struct {
	mu       sync.Mutex
	Commands []runner.Command
	failures []failure
	outputs  map[string]string
}

type failure struct {
	dir    string
	prefix string
	code   int
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{outputs: make(map[string]string)}
}

// FailOn makes any command run in dir whose rendered form starts with prefix
// exit with code. An empty dir matches every directory.
func (r *Recorder) FailOn(dir, prefix string, code int) *Recorder {
	r.failures = append(r.failures, failure{dir: dir, prefix: prefix, code: code})
	return r
}

// StubOutput sets the stdout returned by Output for commands whose rendered
// form equals line.
func (r *Recorder) StubOutput(line, out string) *Recorder {
	r.outputs[line] = out
	return r
}

func (r *Recorder) Run(_ context.Context, cmd runner.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = append(r.Commands, cmd)
	return r.failFor(cmd)
}

func (r *Recorder) Output(_ context.Context, cmd runner.Command) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = append(r.Commands, cmd)
	if err := r.failFor(cmd); err != nil {
		return "", err
	}
	return r.outputs[cmd.String()], nil
}

func (r *Recorder) failFor(cmd runner.Command) error {
	line := cmd.String()
	for _, f := range r.failures {
		if f.dir != "" && f.dir != cmd.Dir {
			continue
		}
		if strings.HasPrefix(line, f.prefix) {
			return &runner.ExitError{Command: cmd, Code: f.code}
		}
	}
	return nil
}

// Lines returns "dir: command" for every recorded command.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		lines = append(lines, c.Dir+": "+c.String())
	}
	return lines
}

// Count returns how many recorded commands start with prefix.
func (r *Recorder) Count(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.Commands {
		if strings.HasPrefix(c.String(), prefix) {
			n++
		}
	}
	return n
}
