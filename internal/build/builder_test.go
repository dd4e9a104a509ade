package build

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johannes-Berggren/publish/internal/runner"
	"github.com/Johannes-Berggren/publish/internal/runner/runnertest"
)

func TestBuilder_RunsToolWithoutArguments(t *testing.T) {
	rec := runnertest.New()
	b := New("/blog", "hugo", nil, rec)

	require.NoError(t, b.Run(context.Background()))
	assert.Equal(t, []string{"/blog: hugo"}, rec.Lines())
}

func TestBuilder_PassesConfiguredArgs(t *testing.T) {
	rec := runnertest.New()
	b := New("/blog", "hexo", []string{"generate"}, rec)

	require.NoError(t, b.Run(context.Background()))
	assert.Equal(t, "hexo generate", b.Command().String())
}

func TestBuilder_PreservesExitStatus(t *testing.T) {
	rec := runnertest.New().FailOn("", "hugo", 255)
	b := New("/blog", "hugo", nil, rec)

	err := b.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 255, runner.ExitCode(err))
	assert.Contains(t, err.Error(), "build command failed")
}
