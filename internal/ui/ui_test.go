package ui

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johannes-Berggren/publish/internal/models"
	"github.com/Johannes-Berggren/publish/internal/publish"
)

func typeText(m tea.Model, s string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestPromptModel_Submit(t *testing.T) {
	var m tea.Model = NewPromptModel(nil, NewStyles(&bytes.Buffer{}))
	m = typeText(m, "Update post")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	pm := m.(PromptModel)
	assert.True(t, pm.Submitted())
	assert.Equal(t, "Update post", pm.Message())
}

func TestPromptModel_RejectsEmpty(t *testing.T) {
	var m tea.Model = NewPromptModel(nil, NewStyles(&bytes.Buffer{}))
	m = typeText(m, "   ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Nil(t, cmd)

	pm := m.(PromptModel)
	assert.False(t, pm.Submitted())
	assert.Contains(t, pm.View(), "commit message cannot be empty")
}

func TestPromptModel_Cancel(t *testing.T) {
	var m tea.Model = NewPromptModel(nil, NewStyles(&bytes.Buffer{}))
	m = typeText(m, "draft")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.False(t, m.(PromptModel).Submitted())
	assert.Empty(t, m.View())
}

func TestPromptModel_ViewShowsPendingChanges(t *testing.T) {
	m := NewPromptModel([]models.FileChange{
		{Path: "content/posts/di.md", StagedStatus: models.StatusModified, IsStaged: true},
		{Path: "drafts/wip.md", Status: models.StatusUntracked, IsUntracked: true},
	}, NewStyles(&bytes.Buffer{}))

	view := m.View()
	assert.Contains(t, view, "2 changed file(s) in source, 1 staged")
	assert.Contains(t, view, "M  content/posts/di.md")
	assert.Contains(t, view, "?? drafts/wip.md")
	assert.Contains(t, view, "ctrl+d: publish")
}

func TestPromptModel_ViewTruncatesLongFileList(t *testing.T) {
	var files []models.FileChange
	for i := 0; i < maxPendingShown+3; i++ {
		files = append(files, models.FileChange{Path: fmt.Sprintf("post-%d.md", i), Status: models.StatusModified})
	}
	view := NewPromptModel(files, NewStyles(&bytes.Buffer{})).View()
	assert.Contains(t, view, "post-0.md")
	assert.NotContains(t, view, fmt.Sprintf("post-%d.md", maxPendingShown))
	assert.Contains(t, view, "... and 3 more")
}

func TestReporter_PlainOutput(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, true) // not a terminal, spinner disabled

	step := models.Step{Name: models.StepBuild, Dir: "."}
	r.StepStarted(step)
	r.StepFinished(step, nil)

	failed := models.Step{Name: models.StepSite, Dir: "."}
	r.StepStarted(failed)
	r.StepFinished(failed, errors.New("push rejected"))

	text := out.String()
	assert.Contains(t, text, "==> Building site")
	assert.Contains(t, text, "✓ Building site")
	assert.Contains(t, text, "✗ Publishing source .")
}

func TestPrintPlan(t *testing.T) {
	var out bytes.Buffer
	PrintPlan(&out, []models.Step{
		{Name: models.StepBuild, Dir: ".", Commands: []string{"hugo"}},
		{Name: models.StepOutput, Dir: "public", Commands: []string{"git add -A", `git commit -m "Update post"`}},
	})

	text := out.String()
	assert.Contains(t, text, "Dry run")
	assert.Contains(t, text, "(.) hugo")
	assert.Contains(t, text, `(public) git commit -m "Update post"`)
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	PrintSummary(&out, &publish.Result{Commits: []models.Commit{
		{Repo: "public", ShortHash: "abc1234", Message: "Update post"},
		{Repo: ".", Message: "Update post"},
	}})

	text := out.String()
	assert.Contains(t, text, "abc1234 public Update post")
	assert.Contains(t, text, "------- . Update post")
	assert.Contains(t, text, "Published.")
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
