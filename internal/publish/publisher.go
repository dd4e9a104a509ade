// Package publish builds the site and commits and pushes the output
// repository and then the parent repository with one commit message.
//
// The steps run in order and the first failure aborts the rest. Nothing is
// rolled back: when the parent repository fails after the output repository
// was pushed, the output commit stays published.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Johannes-Berggren/publish/internal/build"
	"github.com/Johannes-Berggren/publish/internal/config"
	"github.com/Johannes-Berggren/publish/internal/git"
	"github.com/Johannes-Berggren/publish/internal/logfields"
	"github.com/Johannes-Berggren/publish/internal/models"
	"github.com/Johannes-Berggren/publish/internal/runner"
)

// InspectFunc opens a repository read-only. git.Inspect is the default.
type InspectFunc func(dir string, opts git.InspectOptions) (*git.Info, error)

// Options configures a Publisher.
type Options struct {
	// Dir is the parent repository's working directory.
	Dir      string
	Config   *config.Config
	Runner   runner.Runner
	Reporter Reporter
	Inspect  InspectFunc
}

// Publisher runs the publish workflow.
type Publisher struct {
	dir          string
	outputDir    string
	builder      *build.Builder
	output       *git.Repo
	site         *git.Repo
	outputTarget models.PushTarget
	siteTarget   models.PushTarget
	reporter     Reporter
	inspect      InspectFunc
}

// Result lists what a run completed.
type Result struct {
	Steps   []models.Step
	Commits []models.Commit
}

// New returns a Publisher for opts.
func New(opts Options) *Publisher {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	r := opts.Runner
	if r == nil {
		r = runner.NewExecRunner()
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	inspect := opts.Inspect
	if inspect == nil {
		inspect = git.Inspect
	}
	outputDir := filepath.Join(dir, cfg.Output.Dir)

	return &Publisher{
		dir:          dir,
		outputDir:    outputDir,
		builder:      build.New(dir, cfg.Build.Command, cfg.Build.Args, r),
		output:       git.New(outputDir, r),
		site:         git.New(dir, r),
		outputTarget: cfg.Output.Target(),
		siteTarget:   cfg.Site.Target(),
		reporter:     reporter,
		inspect:      inspect,
	}
}

// ValidateMessage rejects an empty commit message. A message of only
// whitespace counts as empty too, so it is refused before the build runs
// instead of by git after the output repository was already built.
func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// Publish validates message, builds the site, then commits and pushes the
// output repository followed by the parent repository.
func (p *Publisher) Publish(ctx context.Context, message string) (*Result, error) {
	if err := ValidateMessage(message); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Result{}

	if err := p.preflight(p.dir, p.siteTarget.Remote, true); err != nil {
		return res, err
	}

	if err := p.Build(ctx); err != nil {
		return res, err
	}
	res.Steps = append(res.Steps, p.buildStep())

	commit, err := p.PublishOutput(ctx, message)
	if err != nil {
		return res, err
	}
	res.Steps = append(res.Steps, p.repoStep(models.StepOutput, p.output, p.outputTarget, message, false))
	res.Commits = append(res.Commits, commit)

	commit, err = p.PublishSite(ctx, message)
	if err != nil {
		return res, err
	}
	res.Steps = append(res.Steps, p.repoStep(models.StepSite, p.site, p.siteTarget, message, true))
	res.Commits = append(res.Commits, commit)

	slog.Info("Publish complete", logfields.DurationMS(time.Since(start).Milliseconds()))
	return res, nil
}

// Build runs the static-site build tool.
func (p *Publisher) Build(ctx context.Context) error {
	step := p.buildStep()
	p.reporter.StepStarted(step)
	err := p.builder.Run(ctx)
	if err != nil {
		err = &StepError{Step: step.Name, Dir: p.dir, Err: err}
	}
	p.reporter.StepFinished(step, err)
	return err
}

// PublishOutput stages, commits and pushes the output repository.
func (p *Publisher) PublishOutput(ctx context.Context, message string) (models.Commit, error) {
	if err := ValidateMessage(message); err != nil {
		return models.Commit{}, err
	}
	if err := p.preflight(p.outputDir, p.outputTarget.Remote, false); err != nil {
		return models.Commit{}, err
	}
	return p.commitAndPush(ctx, models.StepOutput, p.output, p.outputTarget, message, false)
}

// PublishSite stages, commits and pushes the parent repository.
func (p *Publisher) PublishSite(ctx context.Context, message string) (models.Commit, error) {
	if err := ValidateMessage(message); err != nil {
		return models.Commit{}, err
	}
	return p.commitAndPush(ctx, models.StepSite, p.site, p.siteTarget, message, true)
}

func (p *Publisher) commitAndPush(ctx context.Context, name models.StepName, repo *git.Repo, target models.PushTarget, message string, detectParent bool) (models.Commit, error) {
	step := p.repoStep(name, repo, target, message, detectParent)
	p.reporter.StepStarted(step)
	commit, err := p.commitAndPushRepo(ctx, repo, target, message)
	if err != nil {
		err = &StepError{Step: name, Dir: repo.Dir, Err: err}
		slog.Debug("Step failed", logfields.Step(string(name)), logfields.Error(err))
	}
	p.reporter.StepFinished(step, err)
	return commit, err
}

func (p *Publisher) commitAndPushRepo(ctx context.Context, repo *git.Repo, target models.PushTarget, message string) (models.Commit, error) {
	if err := repo.StageAll(ctx); err != nil {
		return models.Commit{}, err
	}
	if err := repo.Commit(ctx, message); err != nil {
		return models.Commit{}, err
	}
	commit, err := repo.HeadCommit(ctx)
	if err != nil {
		slog.Warn("Committed but could not read the new commit", logfields.Dir(repo.Dir), logfields.Error(err))
		commit = models.Commit{Repo: repo.Dir, Message: message}
	}
	if err := repo.Push(ctx, target); err != nil {
		return commit, err
	}
	slog.Info("Pushed", logfields.Dir(repo.Dir), logfields.Target(target.String()), logfields.Commit(commit.ShortHash))
	return commit, nil
}

// preflight makes sure dir is a git repository with the remote configured.
// The output directory must be a repository root of its own so that git
// never falls through to the parent repository. A remote given as a URL or
// path is left for git push to resolve.
func (p *Publisher) preflight(dir, remote string, detectParent bool) error {
	info, err := p.inspect(dir, git.InspectOptions{DetectParent: detectParent})
	if err != nil {
		return &PreflightError{Dir: dir, Err: err}
	}
	if !isRemoteURL(remote) && !info.HasRemote(remote) {
		return &PreflightError{Dir: dir, Err: fmt.Errorf("remote %q is not configured", remote)}
	}
	return nil
}

// isRemoteURL reports whether remote is a URL, scp-style address or path
// rather than the name of a configured remote.
func isRemoteURL(remote string) bool {
	return strings.ContainsAny(remote, ":/\\")
}

// Plan validates message and returns the commands Publish would run. An
// unset branch is shown as the repository's current branch when it can be
// read.
func (p *Publisher) Plan(message string) ([]models.Step, error) {
	if err := ValidateMessage(message); err != nil {
		return nil, err
	}
	return []models.Step{
		p.buildStep(),
		p.repoStep(models.StepOutput, p.output, p.outputTarget, message, false),
		p.repoStep(models.StepSite, p.site, p.siteTarget, message, true),
	}, nil
}

func (p *Publisher) buildStep() models.Step {
	return models.Step{
		Name:     models.StepBuild,
		Dir:      p.dir,
		Commands: []string{p.builder.Command().String()},
	}
}

func (p *Publisher) repoStep(name models.StepName, repo *git.Repo, target models.PushTarget, message string, detectParent bool) models.Step {
	branch := p.displayBranch(repo.Dir, target, detectParent)
	return models.Step{
		Name: name,
		Dir:  repo.Dir,
		Commands: []string{
			repo.StageAllCommand().String(),
			repo.CommitCommand(message).String(),
			repo.PushCommand(target.Remote, branch).String(),
		},
	}
}

// displayBranch names the branch a push to target goes to, mirroring how
// git.Repo.Push resolves an unset branch.
func (p *Publisher) displayBranch(dir string, target models.PushTarget, detectParent bool) string {
	if target.Branch != "" {
		return target.Branch
	}
	info, err := p.inspect(dir, git.InspectOptions{DetectParent: detectParent})
	switch {
	case err != nil:
		return "<current branch>"
	case info.Detached:
		return "HEAD"
	case info.Branch != "":
		return info.Branch
	default:
		return "<current branch>"
	}
}
