// Package build runs the external static-site generator.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Johannes-Berggren/publish/internal/logfields"
	"github.com/Johannes-Berggren/publish/internal/runner"
)

// Builder runs the configured build tool in the site's root directory.
type Builder struct {
	dir     string
	command string
	args    []string
	runner  runner.Runner
}

// New returns a Builder running command with args in dir.
func New(dir, command string, args []string, r runner.Runner) *Builder {
	return &Builder{dir: dir, command: command, args: args, runner: r}
}

// Command is the invocation Run performs.
func (b *Builder) Command() runner.Command {
	return runner.Command{Dir: b.dir, Name: b.command, Args: b.args}
}

// Run regenerates the output directory. The tool's exit status is preserved
// in the returned error.
func (b *Builder) Run(ctx context.Context) error {
	cmd := b.Command()
	start := time.Now()
	slog.Debug("Running build tool", logfields.Command(cmd.String()), logfields.Dir(b.dir))
	if err := b.runner.Run(ctx, cmd); err != nil {
		slog.Debug("Build tool failed", logfields.Command(cmd.String()), logfields.ExitCode(runner.ExitCode(err)))
		return fmt.Errorf("build command failed: %w", err)
	}
	slog.Debug("Build tool finished", logfields.DurationMS(time.Since(start).Milliseconds()))
	return nil
}
