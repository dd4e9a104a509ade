// Package git wraps the git CLI for a single repository directory. Every
// mutation (stage, commit, push) shells out to git so hooks, credentials and
// remote configuration behave exactly as they do for the user.
package git

import (
	"context"

	"github.com/Johannes-Berggren/publish/internal/runner"
)

// Repo is a git working tree rooted at Dir.
type Repo struct {
	Dir    string
	runner runner.Runner
}

// New returns a Repo for dir that runs git through r.
func New(dir string, r runner.Runner) *Repo {
	return &Repo{Dir: dir, runner: r}
}

func (r *Repo) command(args ...string) runner.Command {
	return runner.Command{Dir: r.Dir, Name: "git", Args: args}
}

func (r *Repo) output(ctx context.Context, args ...string) (string, error) {
	return r.runner.Output(ctx, r.command(args...))
}
