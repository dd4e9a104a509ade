package git

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Johannes-Berggren/publish/internal/logfields"
	"github.com/Johannes-Berggren/publish/internal/models"
	"github.com/Johannes-Berggren/publish/internal/runner"
)

// PushCommand is the command Push runs once the branch is known.
func (r *Repo) PushCommand(remote, branch string) runner.Command {
	return r.command("push", remote, branch)
}

// Push pushes to target. An empty target branch resolves to the current
// branch, and to HEAD when the checkout is detached.
func (r *Repo) Push(ctx context.Context, target models.PushTarget) error {
	branch := target.Branch
	if branch == "" {
		current, err := r.CurrentBranch(ctx)
		if err != nil {
			return err
		}
		branch = current
	}
	if branch == "" {
		branch = "HEAD"
	}
	slog.Debug("Pushing", logfields.Dir(r.Dir), logfields.Remote(target.Remote), logfields.Branch(branch))
	return r.runner.Run(ctx, r.PushCommand(target.Remote, branch))
}

// CurrentBranch returns the name of the current branch, or "" when HEAD is
// detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := r.output(ctx, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(branch), nil
}
