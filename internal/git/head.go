package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/Johannes-Berggren/publish/internal/models"
)

// HeadCommit describes the commit HEAD points at.
func (r *Repo) HeadCommit(ctx context.Context) (models.Commit, error) {
	out, err := r.output(ctx, "log", "-1", "--pretty=format:%H|%h|%s")
	if err != nil {
		return models.Commit{}, fmt.Errorf("failed to read HEAD: %w", err)
	}
	return parseHead(r.Dir, out)
}

func parseHead(dir, line string) (models.Commit, error) {
	parts := strings.SplitN(line, "|", 3)
	if len(parts) < 3 {
		return models.Commit{}, fmt.Errorf("unexpected git log output %q", line)
	}
	return models.Commit{
		Repo:      dir,
		Hash:      parts[0],
		ShortHash: parts[1],
		Message:   parts[2],
	}, nil
}
