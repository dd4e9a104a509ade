package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johannes-Berggren/publish/internal/git"
	"github.com/Johannes-Berggren/publish/internal/runner/runnertest"
)

type harness struct {
	app    *App
	rec    *runnertest.Recorder
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		rec:    runnertest.New(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	h.app = &App{
		Dir:    t.TempDir(),
		Stdin:  &bytes.Buffer{},
		Stdout: h.stdout,
		Stderr: h.stderr,
		Runner: h.rec,
		Inspect: func(dir string, _ git.InspectOptions) (*git.Info, error) {
			return &git.Info{Dir: dir, Branch: "master", Remotes: []string{"origin"}}, nil
		},
	}
	return h
}

func (h *harness) run(args ...string) int {
	return Run(context.Background(), h.app, args)
}

func TestRun_EmptyMessage(t *testing.T) {
	for _, args := range [][]string{{}, {""}} {
		h := newHarness(t)

		code := h.run(args...)
		assert.Equal(t, 1, code)
		assert.Equal(t, "Commit message is empty.\n", h.stderr.String())
		assert.Empty(t, h.rec.Commands)
	}
}

func TestRun_EmptyMessageIsRepeatable(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 3; i++ {
		h.stderr.Reset()
		assert.Equal(t, 1, h.run(""))
		assert.Equal(t, "Commit message is empty.\n", h.stderr.String())
	}
	assert.Empty(t, h.rec.Commands)
}

func TestRun_Success(t *testing.T) {
	h := newHarness(t)

	code := h.run("Update post", "--output-branch", "master", "--site-branch", "master")
	require.Equal(t, 0, code, h.stderr.String())

	assert.Equal(t, 1, h.rec.Count("hugo"))
	assert.Equal(t, 2, h.rec.Count(`git commit -m "Update post"`))
	assert.Equal(t, 2, h.rec.Count("git push origin master"))
	assert.Contains(t, h.stdout.String(), "Published.")
}

func TestRun_BuildFailurePropagatesExitStatus(t *testing.T) {
	h := newHarness(t)
	h.rec.FailOn("", "hugo", 3)

	code := h.run("Update post")
	assert.Equal(t, 3, code)
	assert.Equal(t, 0, h.rec.Count("git"))
	assert.Contains(t, h.stderr.String(), "build step failed")
}

func TestRun_GitFailurePropagatesExitStatus(t *testing.T) {
	h := newHarness(t)
	h.rec.FailOn("", "git push", 128)

	assert.Equal(t, 128, h.run("Update post"))
	assert.Equal(t, 1, h.rec.Count("git push"))
}

func TestRun_MessageAfterDoubleDash(t *testing.T) {
	for msg, commit := range map[string]string{
		"-fix typo": `git commit -m "-fix typo"`,
		"config":    "git commit -m config",
	} {
		h := newHarness(t)

		code := h.run("--output-branch", "master", "--site-branch", "master", "--", msg)
		require.Equal(t, 0, code, h.stderr.String())
		assert.Equal(t, 2, h.rec.Count(commit), msg)
	}
}

func TestRun_HelpMentionsDoubleDash(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("--help"))
	assert.Contains(t, h.stdout.String(), `publish -- "-fix typo"`)
}

func TestRun_DryRun(t *testing.T) {
	h := newHarness(t)

	code := h.run("--dry-run", "Update post", "--build-command", "zola")
	require.Equal(t, 0, code, h.stderr.String())
	assert.Empty(t, h.rec.Commands)
	assert.Contains(t, h.stdout.String(), "zola")
	assert.Contains(t, h.stdout.String(), `git commit -m "Update post"`)
}

func TestRun_DryRunStillValidates(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 1, h.run("--dry-run", ""))
	assert.Equal(t, "Commit message is empty.\n", h.stderr.String())
}

func TestRun_TooManyArgs(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 1, h.run("Update", "post"))
	assert.Empty(t, h.rec.Commands)
}

func TestRun_InvalidConfig(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.app.Dir, ".publish.yaml"), []byte("output:\n  dir: /abs\n"), 0o600))

	assert.Equal(t, 1, h.run("Update post"))
	assert.Contains(t, h.stderr.String(), "output.dir")
	assert.Empty(t, h.rec.Commands)
}

func TestRun_ConfigCommand(t *testing.T) {
	h := newHarness(t)

	code := h.run("config", "--output-dir", "site")
	require.Equal(t, 0, code, h.stderr.String())
	assert.Contains(t, h.stdout.String(), "command: hugo")
	assert.Contains(t, h.stdout.String(), "dir: site")
}
