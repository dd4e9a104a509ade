package git

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/Johannes-Berggren/publish/internal/models"
	"github.com/Johannes-Berggren/publish/internal/runner"
)

// StageAllCommand is the command StageAll runs.
func (r *Repo) StageAllCommand() runner.Command { return r.command("add", "-A") }

// StageAll stages all changes, including deletions and untracked files.
func (r *Repo) StageAll(ctx context.Context) error {
	return r.runner.Run(ctx, r.StageAllCommand())
}

// CommitCommand is the command Commit runs.
func (r *Repo) CommitCommand(message string) runner.Command {
	return r.command("commit", "-m", message)
}

// Commit creates a commit with the given message. git exits non-zero when
// nothing is staged.
func (r *Repo) Commit(ctx context.Context, message string) error {
	return r.runner.Run(ctx, r.CommitCommand(message))
}

// WorkingTreeStatus returns all file changes in the working tree.
func (r *Repo) WorkingTreeStatus(ctx context.Context) ([]models.FileChange, error) {
	out, err := r.output(ctx, "status", "--porcelain=v1")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return parseStatus(out), nil
}

// parseStatus parses git status --porcelain output
// Format: XY PATH
// X = staged status, Y = working tree status
func parseStatus(output string) []models.FileChange {
	var files []models.FileChange
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 4 {
			continue
		}

		stagedChar := line[0]
		workingChar := line[1]
		path := strings.TrimSpace(line[3:])

		// "R  old -> new"
		if stagedChar == 'R' {
			if _, newPath, ok := strings.Cut(path, " -> "); ok {
				path = newPath
			}
		}

		file := models.FileChange{Path: path}

		switch stagedChar {
		case 'M':
			file.StagedStatus = models.StatusModified
		case 'A':
			file.StagedStatus = models.StatusAdded
		case 'D':
			file.StagedStatus = models.StatusDeleted
		case 'R':
			file.StagedStatus = models.StatusRenamed
		case 'C':
			file.StagedStatus = models.StatusCopied
		case 'U':
			file.StagedStatus = models.StatusUpdated
		}
		file.IsStaged = file.StagedStatus != ""

		switch workingChar {
		case 'M':
			file.Status = models.StatusModified
		case 'D':
			file.Status = models.StatusDeleted
		case 'U':
			file.Status = models.StatusUpdated
		case '?':
			file.Status = models.StatusUntracked
			file.IsUntracked = true
		}

		files = append(files, file)
	}

	return files
}
