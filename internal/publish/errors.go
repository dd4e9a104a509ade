package publish

import (
	"errors"
	"fmt"

	"github.com/Johannes-Berggren/publish/internal/models"
	"github.com/Johannes-Berggren/publish/internal/runner"
)

// EmptyMessageDiagnostic is the line written to stderr for ErrEmptyMessage.
const EmptyMessageDiagnostic = "Commit message is empty."

// ErrEmptyMessage rejects a publish without a commit message.
var ErrEmptyMessage = errors.New("commit message is empty")

// StepError reports the step that aborted a publish run.
type StepError struct {
	Step models.StepName
	Dir  string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed in %s: %v", e.Step, e.Dir, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// PreflightError reports a repository that is missing or misconfigured.
// It is raised before any git mutation in that repository.
type PreflightError struct {
	Dir string
	Err error
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("preflight check failed for %s: %v", e.Dir, e.Err)
}

func (e *PreflightError) Unwrap() error { return e.Err }

// ExitCode maps a publish error to a process exit status: 0 on success, 1
// for an empty message, the failing tool's own status, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrEmptyMessage) {
		return 1
	}
	if code := runner.ExitCode(err); code != 0 {
		return code
	}
	return 1
}
